// Package sqlite stores games in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-history/internal/store"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements store.Store on database/sql with the sqlite3 driver.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at path and applies migrations.
func Open(path string, log zerolog.Logger) (*Store, error) {
	// Ensure directory exists for ./data/tictactoe.db, etc.
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if err := migrate(db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// migrate applies embedded migrations in lexical order, recording each in _migrations.
func migrate(db *sql.DB, log zerolog.Logger) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}
		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Save upserts the record.
func (s *Store) Save(ctx context.Context, r store.Record) error {
	snap, err := json.Marshal(r.Game)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, snapshot, created_at, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            snapshot = excluded.snapshot,
            updated_at = excluded.updated_at`,
		r.ID, string(snap), r.Created.UTC().Format(time.RFC3339Nano), r.Updated.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", r.ID, err)
	}
	return nil
}

// Load fetches a record by id.
func (s *Store) Load(ctx context.Context, id string) (store.Record, error) {
	var snap, created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot, created_at, updated_at FROM games WHERE id=?`, id,
	).Scan(&snap, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Record{}, store.ErrNotFound
	}
	if err != nil {
		return store.Record{}, fmt.Errorf("load game %s: %w", id, err)
	}

	r := store.Record{ID: id}
	if err := json.Unmarshal([]byte(snap), &r.Game); err != nil {
		return store.Record{}, fmt.Errorf("unmarshal game %s: %w", id, err)
	}
	if r.Created, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return store.Record{}, fmt.Errorf("created_at of %s: %w", id, err)
	}
	if r.Updated, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return store.Record{}, fmt.Errorf("updated_at of %s: %w", id, err)
	}
	return r, nil
}

// Delete removes a record.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
