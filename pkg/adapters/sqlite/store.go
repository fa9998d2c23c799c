// Package sqlite implements the storage port on a single-file SQLite
// database. It is the adapter of choice when the vault should travel as one
// file instead of a directory tree.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/notelet/notelet/pkg/core"
)

// Config holds the configuration for the SQLite store.
type Config struct {
	Path   string
	Logger *slog.Logger
}

// Store implements core.Store on a kv table keyed by (collection, key).
type Store struct {
	Path   string
	config Config
	db     *sql.DB
}

// NewStore creates a SQLite-backed store. The database file is opened in
// Initialize.
func NewStore(config Config) *Store {
	return &Store{
		Path:   config.Path,
		config: config,
	}
}

// Initialize opens (or creates) the database file and runs migrations.
func (s *Store) Initialize(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return core.Storagef(err, "create db directory")
	}

	db, err := sql.Open("sqlite", s.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return core.Storagef(err, "open sqlite %s", s.Path)
	}
	// SQLite supports one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return core.Storagef(err, "migrate %s", s.Path)
	}

	s.db = db
	if s.config.Logger != nil {
		s.config.Logger.Debug("sqlite store ready", "path", s.Path)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Get implements core.Store.
func (s *Store) Get(ctx context.Context, c core.Collection, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE collection = ? AND key = ?`, string(c), key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s/%s: %w", c, key, core.ErrNotFound)
	}
	if err != nil {
		return nil, core.Storagef(err, "read %s/%s", c, key)
	}
	return value, nil
}

// Put implements core.Store.
func (s *Store) Put(ctx context.Context, c core.Collection, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (collection, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (collection, key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		string(c), key, value,
	)
	if err != nil {
		return core.Storagef(err, "write %s/%s", c, key)
	}
	return nil
}

// Delete implements core.Store. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, c core.Collection, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE collection = ? AND key = ?`, string(c), key,
	)
	if err != nil {
		return core.Storagef(err, "delete %s/%s", c, key)
	}
	return nil
}

// List implements core.Store.
func (s *Store) List(ctx context.Context, c core.Collection) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE collection = ?`, string(c),
	)
	if err != nil {
		return nil, core.Storagef(err, "list collection %s", c)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, core.Storagef(err, "scan %s row", c)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, core.Storagef(err, "list collection %s", c)
	}
	return out, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			collection TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_kv_collection ON kv(collection)`,
	}
	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
