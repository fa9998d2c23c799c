package search

import "github.com/aretw0/introspection"

// IndexState exposes internal state for observability.
type IndexState struct {
	Entries   int    `json:"entries"`
	StartMark string `json:"start_mark"`
	EndMark   string `json:"end_mark"`
}

// State implements introspection.Introspectable.
func (ix *Index) State() any {
	return IndexState{
		Entries:   ix.Len(),
		StartMark: ix.startMark,
		EndMark:   ix.endMark,
	}
}

// ComponentType implements introspection.Component.
func (ix *Index) ComponentType() string {
	return "search-index"
}

var _ introspection.Introspectable = (*Index)(nil)
var _ introspection.Component = (*Index)(nil)
