package notes

import (
	"github.com/aretw0/introspection"

	"github.com/notelet/notelet/pkg/core"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	StoreType string `json:"store_type"`
	Online    bool   `json:"online"`
	Watchable bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	storeType := "store"
	if comp, ok := r.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}
	_, watchable := r.store.(core.Watchable)

	return RepositoryState{
		StoreType: storeType,
		Online:    r.conn.Online(),
		Watchable: watchable,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
