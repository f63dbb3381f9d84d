// Package storetest holds the behavior every store.Store must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/tictactoe-history/internal/domain"
	"github.com/jaminalder/tictactoe-history/internal/store"
)

// RunContract exercises s against the store.Store contract.
func RunContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	g := domain.New()
	require.NoError(t, g.ApplyMove(4))
	require.NoError(t, g.ApplyMove(0))
	require.NoError(t, g.JumpTo(1))
	g.ToggleSort()

	now := time.Now().UTC().Truncate(time.Second)
	rec := store.Record{ID: "game-1", Game: g.Snapshot(), Created: now, Updated: now}

	t.Run("load unknown", func(t *testing.T) {
		_, err := s.Load(ctx, "nope")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, rec))
		got, err := s.Load(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Game, got.Game)
		assert.True(t, rec.Created.Equal(got.Created), "created %v != %v", rec.Created, got.Created)

		restored, err := domain.Restore(got.Game)
		require.NoError(t, err)
		assert.Equal(t, 1, restored.Step())
		assert.Equal(t, 3, restored.Len())
	})

	t.Run("overwrite", func(t *testing.T) {
		g2 := domain.New()
		upd := rec
		upd.Game = g2.Snapshot()
		upd.Updated = now.Add(time.Minute)
		require.NoError(t, s.Save(ctx, upd))

		got, err := s.Load(ctx, rec.ID)
		require.NoError(t, err)
		assert.Len(t, got.Game.History, 1)
		assert.True(t, upd.Updated.Equal(got.Updated))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, rec.ID))
		_, err := s.Load(ctx, rec.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, rec.ID), store.ErrNotFound)
	})
}
