package sqlite

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path string `json:"path"`
	Open bool   `json:"open"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	return StoreState{
		Path: s.Path,
		Open: s.db != nil,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "sqlite-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
