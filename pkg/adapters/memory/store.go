// Package memory provides an in-memory implementation of the storage port.
// It backs tests and the ephemeral "scratch" mode of the CLI.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/notelet/notelet/pkg/core"
)

// Store implements core.Store with plain maps. Values are copied on the way
// in and out so callers can never alias the stored bytes.
type Store struct {
	mu   sync.RWMutex
	data map[core.Collection]map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[core.Collection]map[string][]byte)}
}

// Initialize implements core.Store. Nothing to prepare.
func (s *Store) Initialize(ctx context.Context) error { return nil }

// Close implements core.Store.
func (s *Store) Close() error { return nil }

// Get implements core.Store.
func (s *Store) Get(ctx context.Context, c core.Collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[c][key]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", c, key, core.ErrNotFound)
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put implements core.Store.
func (s *Store) Put(ctx context.Context, c core.Collection, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[c] == nil {
		s.data[c] = make(map[string][]byte)
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.data[c][key] = v
	return nil
}

// Delete implements core.Store.
func (s *Store) Delete(ctx context.Context, c core.Collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[c], key)
	return nil
}

// List implements core.Store.
func (s *Store) List(ctx context.Context, c core.Collection) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]byte, len(s.data[c]))
	for k, v := range s.data[c] {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out, nil
}

// Len reports the number of entries in a collection. Test helper.
func (s *Store) Len(c core.Collection) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data[c])
}
