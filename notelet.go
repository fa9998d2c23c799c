package notelet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/notelet/notelet/internal/platform"
	"github.com/notelet/notelet/pkg/core"
	"github.com/notelet/notelet/pkg/notes"
	"github.com/notelet/notelet/pkg/search"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Re-exported domain types, so most applications only import this package.
type (
	Note          = core.Note
	Label         = core.Label
	Block         = core.Block
	BlockKind     = core.BlockKind
	Color         = core.Color
	Event         = core.Event
	AppSettings   = core.AppSettings
	SyncQueueItem = core.SyncQueueItem
	Result        = search.Result
	BulkResult    = notes.BulkResult
)

// --- Configuration ---

// Option defines a functional option for configuring a Vault.
type Option = platform.Option

// WithLogger sets the logger for the vault and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore injects a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name ("fs", "sqlite", "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithConnectivity injects the online/offline signal driving the sync queue.
func WithConnectivity(conn core.Connectivity) Option {
	return platform.WithConnectivity(conn)
}

// WithClock injects the time source used for timestamps and trash expiry.
func WithClock(clock core.Clock) Option {
	return platform.WithClock(clock)
}

// WithMustExist requires the vault to already exist instead of being created.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithHighlightMarkers overrides the markers around search matches.
func WithHighlightMarkers(start, end string) Option {
	return platform.WithHighlightMarkers(start, end)
}

// WithRebuildInterval sets the debounce window for watch-driven index
// rebuilds.
func WithRebuildInterval(d time.Duration) Option {
	return platform.WithRebuildInterval(d)
}

// WithWatcherErrorHandler registers a callback for watch loop failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Facade ---

// Vault bundles the repository and the search index. All repository
// operations are promoted; Search always reflects the latest persisted
// state.
type Vault struct {
	*notes.Repository

	index       *search.Index
	rebuilder   *search.Rebuilder
	cancelWatch context.CancelFunc
	logger      *slog.Logger
}

// Open wires and initializes a vault at the given URI (a directory for the
// fs adapter, a database file for sqlite). Expired trash is swept and the
// search index built before Open returns. If the store supports watching,
// external edits trigger debounced index rebuilds until Close.
func Open(ctx context.Context, uri string, opts ...Option) (*Vault, error) {
	c, err := platform.New(uri, opts...)
	if err != nil {
		return nil, err
	}

	v := &Vault{
		Repository: c.Repository,
		index:      c.Index,
		logger:     c.Logger,
	}
	v.rebuilder = search.NewRebuilder(c.RebuildInterval, func() {
		if err := v.RefreshIndex(context.Background()); err != nil && v.logger != nil {
			v.logger.Error("index rebuild failed", "error", err)
		}
	})

	swept, err := v.Repository.Initialize(ctx)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if len(swept) > 0 && v.logger != nil {
		v.logger.Info("trash sweep removed expired notes", "count", len(swept))
	}

	if err := v.RefreshIndex(ctx); err != nil {
		return nil, err
	}
	v.startWatch(ctx)

	return v, nil
}

// startWatch begins observing external vault changes when the store
// supports it; each burst of events triggers one index rebuild.
func (v *Vault) startWatch(ctx context.Context) {
	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	events, err := v.Repository.Watch(watchCtx, "**")
	if err != nil {
		cancel()
		if v.logger != nil {
			v.logger.Debug("change watching disabled", "reason", err)
		}
		return
	}
	v.cancelWatch = cancel

	lifecycle.Go(watchCtx, func(ctx context.Context) error {
		for range events {
			v.rebuilder.Trigger()
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if v.logger != nil {
			v.logger.Error("watch consumer failed", "error", err)
		}
	}))
}

// Search refreshes the index from the repository and runs a ranked
// substring query.
func (v *Vault) Search(ctx context.Context, query string) ([]search.Result, error) {
	if err := v.RefreshIndex(ctx); err != nil {
		return nil, err
	}
	return v.index.Search(query), nil
}

// RefreshIndex rebuilds the search index from the current repository state.
func (v *Vault) RefreshIndex(ctx context.Context) error {
	all, err := v.Repository.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	labels, err := v.Repository.Labels(ctx)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	v.index.Rebuild(all, labels)
	return nil
}

// Index exposes the search index for read-only queries.
func (v *Vault) Index() *search.Index { return v.index }

// Close stops watching, waits for in-flight rebuilds and closes the store.
func (v *Vault) Close() error {
	if v.cancelWatch != nil {
		v.cancelWatch()
	}
	v.rebuilder.Close()
	return v.Repository.Close()
}
