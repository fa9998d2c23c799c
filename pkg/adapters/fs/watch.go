package fs

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/notelet/notelet/pkg/core"
)

// eventBufferSize is the capacity of a watch channel. A slow consumer
// delays delivery but never blocks the worker forever: the worker also
// yields on context cancellation.
const (
	eventBufferSize  = 16
	watchStopTimeout = 10 * time.Second
)

// Watch implements core.Watchable. Pattern is a "collection/key" glob, e.g.
// "notes/*" or "**". The returned channel closes when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, core.Validation("pattern", fmt.Sprintf("invalid watch pattern %q", pattern))
	}

	events := make(chan core.Event, eventBufferSize)
	w := newWatchWorker(s, pattern, events)

	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	// Supervise shutdown: when ctx ends, stop the worker, then close the
	// channel the consumer ranges over.
	lifecycle.Go(context.Background(), func(context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), watchStopTimeout)
		defer cancel()
		err := w.Stop(stopCtx)
		close(events)
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(fmt.Errorf("watch shutdown: %w", err))
		} else if s.config.Logger != nil {
			s.config.Logger.Error("watch shutdown failed", "error", err)
		}
	}))

	return events, nil
}
