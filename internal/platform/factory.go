package platform

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/notelet/notelet/pkg/adapters/fs"
	"github.com/notelet/notelet/pkg/adapters/memory"
	"github.com/notelet/notelet/pkg/adapters/sqlite"
	"github.com/notelet/notelet/pkg/core"
	"github.com/notelet/notelet/pkg/notes"
	"github.com/notelet/notelet/pkg/search"
)

// Components is the wired object graph behind a vault: the repository, the
// search index and the debounced rebuilder that keeps them aligned.
type Components struct {
	Repository *notes.Repository
	Index      *search.Index
	Logger     *slog.Logger

	// RebuildInterval is the quiet window the facade should use for its
	// debounced index rebuilder.
	RebuildInterval time.Duration
}

// New wires a vault from an adapter URI. The URI is adapter-specific: a
// directory for "fs", a database file for "sqlite", ignored for "memory".
func New(uri string, opts ...Option) (*Components, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		var err error
		store, err = newStore(uri, o)
		if err != nil {
			return nil, err
		}
	}

	repo, err := notes.NewRepository(notes.Config{
		Store:        store,
		Connectivity: o.connectivity,
		Clock:        o.clock,
		Logger:       o.logger,
	})
	if err != nil {
		return nil, err
	}

	var indexOpts []search.Option
	if o.highlightStart != "" || o.highlightEnd != "" {
		indexOpts = append(indexOpts, search.WithHighlightMarkers(o.highlightStart, o.highlightEnd))
	}
	if o.logger != nil {
		indexOpts = append(indexOpts, search.WithLogger(o.logger))
	}
	index := search.NewIndex(indexOpts...)

	return &Components{
		Repository:      repo,
		Index:           index,
		Logger:          o.logger,
		RebuildInterval: o.rebuildInterval,
	}, nil
}

func newStore(uri string, o *options) (core.Store, error) {
	switch o.adapter {
	case "fs", "":
		return fs.NewStore(fs.Config{
			Path:         uri,
			MustExist:    o.mustExist,
			Logger:       o.logger,
			ErrorHandler: o.watcherErrorHandler,
		}), nil
	case "sqlite":
		return sqlite.NewStore(sqlite.Config{
			Path:   uri,
			Logger: o.logger,
		}), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage adapter: %s", o.adapter)
	}
}
