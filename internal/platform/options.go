package platform

import (
	"log/slog"
	"time"

	"github.com/notelet/notelet/pkg/core"
)

// options holds the internal configuration for a Notelet vault.
type options struct {
	store        core.Store
	connectivity core.Connectivity
	clock        core.Clock
	logger       *slog.Logger
	adapter      string
	mustExist    bool

	highlightStart  string
	highlightEnd    string
	rebuildInterval time.Duration

	watcherErrorHandler func(error)
}

// Option defines a functional option for configuring Notelet.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:         "fs",
		rebuildInterval: 300 * time.Millisecond,
	}
}

// WithLogger sets the logger for the vault and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom storage adapter (e.g. mock, browser bridge).
// If provided, the adapter name is ignored.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name: "fs", "sqlite" or
// "memory". Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithConnectivity injects the connectivity signal that decides whether
// mutations are queued for sync. Defaults to always online.
func WithConnectivity(conn core.Connectivity) Option {
	return func(o *options) {
		o.connectivity = conn
	}
}

// WithClock injects the time source. Defaults to the system clock.
func WithClock(clock core.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithMustExist requires the vault path to already exist instead of being
// created on Initialize.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithHighlightMarkers overrides the strings wrapped around matched
// fragments in search results. Defaults to "<em>"/"</em>".
func WithHighlightMarkers(start, end string) Option {
	return func(o *options) {
		o.highlightStart = start
		o.highlightEnd = end
	}
}

// WithRebuildInterval sets the quiet window for debounced search index
// rebuilds driven by vault change events.
func WithRebuildInterval(d time.Duration) Option {
	return func(o *options) {
		o.rebuildInterval = d
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.watcherErrorHandler = fn
	}
}
