// Package fs implements the storage port on a plain directory tree: one
// subdirectory per collection, one JSON file per key. Writes are atomic and
// external edits can be observed through Watch.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/notelet/notelet/pkg/core"
)

const fileExt = ".json"

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string
	MustExist bool
	Logger    *slog.Logger

	// ErrorHandler receives asynchronous watcher failures. Optional.
	ErrorHandler func(error)
}

// Store implements core.Store on a vault directory.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// NewStore creates a filesystem-backed store rooted at config.Path.
func NewStore(config Config) *Store {
	return &Store{
		Path:   config.Path,
		config: config,
	}
}

// Initialize creates the vault directory and one subdirectory per
// collection.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", s.Path)
		}
		if err != nil {
			return core.Storagef(err, "stat vault %s", s.Path)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", s.Path)
		}
	}

	for _, c := range []core.Collection{
		core.CollectionNotes,
		core.CollectionLabels,
		core.CollectionSettings,
		core.CollectionSyncQueue,
	} {
		if err := os.MkdirAll(filepath.Join(s.Path, string(c)), 0755); err != nil {
			return core.Storagef(err, "create collection directory %s", c)
		}
	}
	return nil
}

// Close is a no-op; watchers are bound to their context instead.
func (s *Store) Close() error { return nil }

// Get implements core.Store.
func (s *Store) Get(ctx context.Context, c core.Collection, key string) ([]byte, error) {
	path, err := s.keyPath(c, key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s/%s: %w", c, key, core.ErrNotFound)
	}
	if err != nil {
		return nil, core.Storagef(err, "read %s/%s", c, key)
	}
	return data, nil
}

// Put implements core.Store. The value is written to a temp file and
// renamed into place, so readers never observe a partial write.
func (s *Store) Put(ctx context.Context, c core.Collection, key string, value []byte) error {
	path, err := s.keyPath(c, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return core.Storagef(err, "create collection directory %s", c)
	}
	if err := writeFileAtomic(path, value, 0644); err != nil {
		return core.Storagef(err, "write %s/%s", c, key)
	}
	return nil
}

// Delete implements core.Store. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, c core.Collection, key string) error {
	path, err := s.keyPath(c, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return core.Storagef(err, "delete %s/%s", c, key)
	}
	return nil
}

// List implements core.Store.
func (s *Store) List(ctx context.Context, c core.Collection) (map[string][]byte, error) {
	dir := filepath.Join(s.Path, string(c))

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string][]byte{}, nil
	}
	if err != nil {
		return nil, core.Storagef(err, "list collection %s", c)
	}

	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, TempFilePrefix) {
			continue
		}
		key := strings.TrimSuffix(name, fileExt)
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue // removed between ReadDir and ReadFile
		}
		if err != nil {
			return nil, core.Storagef(err, "read %s/%s", c, key)
		}
		out[key] = data
	}
	return out, nil
}

// keyPath maps collection/key to a file path, refusing keys that would
// escape the collection directory.
func (s *Store) keyPath(c core.Collection, key string) (string, error) {
	if key == "" || key == "." || key == ".." || key != filepath.Base(key) || strings.ContainsAny(key, `/\`) {
		return "", core.Validation("key", fmt.Sprintf("invalid storage key %q", key))
	}
	return filepath.Join(s.Path, string(c), key+fileExt), nil
}
