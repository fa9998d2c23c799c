// Package search maintains an in-memory full-text index over notes and
// answers ranked substring queries with match highlighting.
package search

import (
	"log/slog"
	"sync"

	"github.com/notelet/notelet/pkg/core"
)

// Scoring weights. A title hit outranks any combination of a content hit
// and two label hits.
const (
	scoreTitle   = 10
	scoreContent = 5
	scoreLabel   = 3
)

// Default markers wrapped around matched fragments.
const (
	DefaultStartMark = "<em>"
	DefaultEndMark   = "</em>"
)

// entry is the indexed projection of one note: its title, the flattened
// plain text of its block tree, and the resolved names of its labels.
type entry struct {
	title   string
	content string
	labels  []string
}

// Index is a queryable snapshot of the non-trashed notes. It is safe for
// concurrent use; queries see the last completed rebuild.
type Index struct {
	mu        sync.RWMutex
	entries   map[string]entry
	startMark string
	endMark   string
	logger    *slog.Logger
}

// Option configures an Index.
type Option func(*Index)

// WithHighlightMarkers overrides the strings wrapped around matched
// fragments in results.
func WithHighlightMarkers(start, end string) Option {
	return func(ix *Index) {
		ix.startMark = start
		ix.endMark = end
	}
}

// WithLogger attaches a logger for rebuild diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Index) { ix.logger = logger }
}

// NewIndex creates an empty index.
func NewIndex(opts ...Option) *Index {
	ix := &Index{
		entries:   make(map[string]entry),
		startMark: DefaultStartMark,
		endMark:   DefaultEndMark,
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Rebuild replaces the whole index from the given notes and labels. Trashed
// notes are excluded: nothing in the trash is searchable. Rebuilding from
// the same inputs yields the same index.
func (ix *Index) Rebuild(notes []core.Note, labels []core.Label) {
	names := make(map[string]string, len(labels))
	for _, l := range labels {
		names[l.ID] = l.Name
	}

	next := make(map[string]entry, len(notes))
	for _, n := range notes {
		if n.Trashed {
			continue
		}
		next[n.ID] = makeEntry(n, names)
	}

	ix.mu.Lock()
	ix.entries = next
	ix.mu.Unlock()

	if ix.logger != nil {
		ix.logger.Debug("search index rebuilt", "entries", len(next))
	}
}

// Upsert indexes a single note in place, or drops it if it is trashed.
// Label names must be resolved by the caller.
func (ix *Index) Upsert(n core.Note, labelNames map[string]string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if n.Trashed {
		delete(ix.entries, n.ID)
		return
	}
	ix.entries[n.ID] = makeEntry(n, labelNames)
}

// Remove drops a note from the index.
func (ix *Index) Remove(noteID string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.entries, noteID)
}

// Len reports the number of indexed notes.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

func makeEntry(n core.Note, labelNames map[string]string) entry {
	e := entry{
		title:   n.Title,
		content: n.PlainText(),
	}
	for _, id := range n.Labels {
		if name, ok := labelNames[id]; ok {
			e.labels = append(e.labels, name)
		}
	}
	return e
}
