package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-history/internal/domain"
	"github.com/jaminalder/tictactoe-history/internal/store"
	"github.com/jaminalder/tictactoe-history/internal/store/sqlite"
	"github.com/jaminalder/tictactoe-history/internal/store/storetest"
)

func TestSQLiteStore_Contract(t *testing.T) {
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "games.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	storetest.RunContract(t, s)
}

func TestSQLiteStore_ReopenKeepsGamesAndSkipsMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "games.db")
	ctx := context.Background()

	s, err := sqlite.Open(path, zerolog.Nop())
	require.NoError(t, err)
	g := domain.New()
	require.NoError(t, g.ApplyMove(8))
	require.NoError(t, s.Save(ctx, store.Record{ID: "keep", Game: g.Snapshot()}))
	require.NoError(t, s.Close())

	s, err = sqlite.Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), got.Game)
}
