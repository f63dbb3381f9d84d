package store

import (
	"context"
	"slices"
	"sync"
)

// memory is an in-memory map-based Store. State is lost on restart.
type memory struct {
	mu    sync.RWMutex
	games map[string]Record
}

// NewMemory constructs an empty in-memory Store.
func NewMemory() Store {
	return &memory{games: make(map[string]Record)}
}

func (m *memory) Save(ctx context.Context, r Record) error {
	r.Game.History = slices.Clone(r.Game.History)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[r.ID] = r
	return nil
}

func (m *memory) Load(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.games[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	r.Game.History = slices.Clone(r.Game.History)
	return r, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *memory) Close() error { return nil }
