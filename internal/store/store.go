// Package store persists games between requests.
//
// Implementations are backed by memory (this package), Redis or SQLite. Every
// backend stores a domain.Snapshot; the service restores it into a Game.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jaminalder/tictactoe-history/internal/domain"
)

// ErrNotFound is returned by Load and Delete for unknown ids.
var ErrNotFound = errors.New("game not found")

// Record is one stored game.
type Record struct {
	ID      string          `json:"id"`
	Game    domain.Snapshot `json:"game"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
}

// Store defines the persistence interface for games.
type Store interface {
	// Save persists or updates a record.
	Save(ctx context.Context, r Record) error
	// Load retrieves a record by id, or ErrNotFound.
	Load(ctx context.Context, id string) (Record, error)
	// Delete removes a record, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	Close() error
}
