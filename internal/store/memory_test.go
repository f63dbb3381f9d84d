package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-history/internal/domain"
	"github.com/jaminalder/tictactoe-history/internal/store"
	"github.com/jaminalder/tictactoe-history/internal/store/storetest"
)

func TestMemoryStore_Contract(t *testing.T) {
	storetest.RunContract(t, store.NewMemory())
}

func TestMemoryStore_IsolatesCallerSlices(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	g := domain.New()
	require.NoError(t, g.ApplyMove(0))
	rec := store.Record{ID: "a", Game: g.Snapshot()}
	require.NoError(t, s.Save(ctx, rec))

	rec.Game.History[1].Index = 7
	got, err := s.Load(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, 0, got.Game.History[1].Index)
}
