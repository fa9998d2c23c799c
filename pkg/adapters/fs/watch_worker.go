package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/notelet/notelet/pkg/core"
)

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("fs-watcher"),
		store:      store,
		pattern:    pattern,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, c := range []core.Collection{
		core.CollectionNotes,
		core.CollectionLabels,
		core.CollectionSettings,
		core.CollectionSyncQueue,
	} {
		if err := watcher.Add(filepath.Join(w.store.Path, string(c))); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch collection %s: %w", c, err)
		}
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// resolve maps a filesystem path to its collection/key pair. Returns false
// for anything that is not a stored value: temp files, directories, foreign
// extensions, files outside a known collection.
func (w *watchWorker) resolve(path string) (core.Collection, string, bool) {
	rel, err := filepath.Rel(w.store.Path, path)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 2 {
		return "", "", false
	}

	name := parts[1]
	if strings.HasPrefix(name, TempFilePrefix) || !strings.HasSuffix(name, fileExt) {
		return "", "", false
	}
	return core.Collection(parts[0]), strings.TrimSuffix(name, fileExt), true
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

// processEvent filters, maps and debounces one filesystem event.
func (w *watchWorker) processEvent(ctx context.Context, event fsnotify.Event) {
	if w.store.config.Logger != nil {
		w.store.config.Logger.Debug("event received", "name", event.Name)
	}

	collection, key, ok := w.resolve(event.Name)
	if !ok {
		return
	}
	eType := mapEventType(event)
	if eType == "" {
		return
	}

	ref := string(collection) + "/" + key
	if match, err := doublestar.Match(w.pattern, ref); err != nil || !match {
		return
	}

	w.sendEvent(ctx, ref, core.Event{
		Type:       eType,
		Collection: collection,
		Key:        key,
		Timestamp:  time.Now().Unix(),
	})
}

// sendEvent enqueues an event via the debouncer, guarding against channel
// closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, ref string, event core.Event) {
	w.debouncer.add(ref, event, func(v any) {
		defer func() {
			// The events channel may close while a timer is in flight.
			_ = recover()
		}()
		select {
		case w.events <- v.(core.Event):
		case <-ctx.Done():
		}
	})
}

func (w *watchWorker) handleWatcherError(err error) {
	if w.store.config.Logger != nil {
		w.store.config.Logger.Error("fsnotify error", "error", err)
	}
	if w.store.config.ErrorHandler != nil {
		w.store.config.ErrorHandler(err)
	}
}

func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			logger := w.store.config.Logger
			if logger != nil {
				if logger.Enabled(ctx, slog.LevelDebug) {
					logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
				} else {
					logger.Error("watcher panic", "error", panicErr)
				}
			}
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.eventLoop(ctx)

	// Stop accepting events and wait for in-flight timers before the caller
	// closes the events channel.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
