// Package notes implements the repository layer: note and label CRUD, the
// trash lifecycle, bulk operations and the offline sync queue, on top of an
// injected key-value storage port.
package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/notelet/notelet/pkg/core"
)

// Repository owns all mutations of notes, labels and settings. A single
// mutex serializes mutations so two edits of the same note can never race a
// lost update; every public method resolves only after the storage write
// completed.
type Repository struct {
	store  core.Store
	conn   core.Connectivity
	clock  core.Clock
	logger *slog.Logger

	mu          sync.Mutex
	unsubscribe func()
}

// Config holds the repository dependencies. Store is required; the rest
// default to the system clock, an always-online signal and no logging.
type Config struct {
	Store        core.Store
	Connectivity core.Connectivity
	Clock        core.Clock
	Logger       *slog.Logger
}

// NewRepository wires a repository. Call Initialize before first use.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Store == nil {
		return nil, errors.New("repository requires a store")
	}
	if cfg.Connectivity == nil {
		cfg.Connectivity = core.AlwaysOnline{}
	}
	if cfg.Clock == nil {
		cfg.Clock = core.SystemClock()
	}

	r := &Repository{
		store:  cfg.Store,
		conn:   cfg.Connectivity,
		clock:  cfg.Clock,
		logger: cfg.Logger,
	}

	r.unsubscribe = r.conn.Subscribe(func(online bool) {
		if r.logger != nil {
			r.logger.Info("connectivity changed", "online", online)
		}
	})

	return r, nil
}

// Initialize prepares the storage and runs the trash expiry sweep. The ids
// of swept notes are returned so dependent indices can be invalidated.
func (r *Repository) Initialize(ctx context.Context) (swept []string, err error) {
	if err := r.store.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	swept, err = r.SweepExpiredTrash(ctx, r.clock.Now())
	if err != nil {
		return nil, err
	}
	if len(swept) > 0 && r.logger != nil {
		r.logger.Info("expired trash swept", "count", len(swept))
	}
	return swept, nil
}

// Close cancels the connectivity subscription and closes the store.
func (r *Repository) Close() error {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	return r.store.Close()
}

// Online reports the current connectivity state.
func (r *Repository) Online() bool { return r.conn.Online() }

// Watch observes external changes to the persisted data, if the store
// supports watching.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	w, ok := r.store.(core.Watchable)
	if !ok {
		return nil, errors.New("store does not support watching")
	}
	return w.Watch(ctx, pattern)
}

// --- Note CRUD ---

// Create persists a new note. Zero fields are filled with defaults: a fresh
// id, a single empty text block, order = max(existing)+1, timestamps = now.
// Appends a create entry to the sync queue iff offline.
func (r *Repository) Create(ctx context.Context, draft core.Note) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	n := draft

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Color == "" {
		n.Color = core.ColorDefault
	}
	if len(n.Blocks) == 0 {
		n.Blocks = core.BlockList{core.NewTextBlock(0)}
	}
	n.CreatedAt = now
	n.Touch(now, r.conn.Online())

	all, err := r.loadNotes(ctx)
	if err != nil {
		return core.Note{}, err
	}
	n.Order = core.AppendOrder(all)

	if err := n.Validate(); err != nil {
		return core.Note{}, err
	}
	if err := r.saveNote(ctx, &n); err != nil {
		return core.Note{}, err
	}
	if err := r.enqueue(ctx, core.EntityNote, n.ID, core.OpCreate, &n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Update applies mutate to the stored note, refreshes UpdatedAt/SyncStatus,
// validates and persists. Fails with ErrNotFound for an absent id. Appends
// an update entry to the sync queue iff offline.
func (r *Repository) Update(ctx context.Context, id string, mutate func(*core.Note) error) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.update(ctx, id, mutate)
}

// update is the unlocked form shared by trash/bulk/label operations.
func (r *Repository) update(ctx context.Context, id string, mutate func(*core.Note) error) (core.Note, error) {
	n, err := r.loadNote(ctx, id)
	if err != nil {
		return core.Note{}, err
	}
	if err := mutate(&n); err != nil {
		return core.Note{}, err
	}
	n.Touch(r.clock.Now(), r.conn.Online())

	if err := n.Validate(); err != nil {
		return core.Note{}, err
	}
	if err := r.saveNote(ctx, &n); err != nil {
		return core.Note{}, err
	}
	if err := r.enqueue(ctx, core.EntityNote, n.ID, core.OpUpdate, &n); err != nil {
		return core.Note{}, err
	}
	return n, nil
}

// Get retrieves a note by id.
func (r *Repository) Get(ctx context.Context, id string) (core.Note, error) {
	return r.loadNote(ctx, id)
}

// List returns all notes sorted by their board order. The persisted order
// keys are reported as stored; only mutations renumber.
func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	ptrs, err := r.loadNotes(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ptrs, func(i, j int) bool { return ptrs[i].Order < ptrs[j].Order })

	out := make([]core.Note, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	return out, nil
}

// Delete hard-deletes a note. Fails with ErrNotFound for an absent id.
// Appends a delete entry to the sync queue iff offline.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delete(ctx, id)
}

func (r *Repository) delete(ctx context.Context, id string) error {
	if _, err := r.loadNote(ctx, id); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, core.CollectionNotes, id); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return r.enqueue(ctx, core.EntityNote, id, core.OpDelete, nil)
}

// --- persistence helpers ---

func (r *Repository) loadNote(ctx context.Context, id string) (core.Note, error) {
	data, err := r.store.Get(ctx, core.CollectionNotes, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Note{}, fmt.Errorf("note %s: %w", id, core.ErrNotFound)
		}
		return core.Note{}, fmt.Errorf("load note %s: %w", id, err)
	}
	var n core.Note
	if err := json.Unmarshal(data, &n); err != nil {
		return core.Note{}, core.Storagef(err, "decode note %s", id)
	}
	return n, nil
}

func (r *Repository) loadNotes(ctx context.Context) ([]*core.Note, error) {
	entries, err := r.store.List(ctx, core.CollectionNotes)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]*core.Note, 0, len(entries))
	for key, data := range entries {
		var n core.Note
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, core.Storagef(err, "decode note %s", key)
		}
		out = append(out, &n)
	}
	return out, nil
}

func (r *Repository) saveNote(ctx context.Context, n *core.Note) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode note %s: %w", n.ID, err)
	}
	if err := r.store.Put(ctx, core.CollectionNotes, n.ID, data); err != nil {
		return fmt.Errorf("save note %s: %w", n.ID, err)
	}
	return nil
}

// enqueue appends a sync queue entry when (and only when) offline. The
// payload carries the full entity state so the queue consumer can replay it.
func (r *Repository) enqueue(ctx context.Context, et core.EntityType, entityID string, op core.Operation, payload any) error {
	if r.conn.Online() {
		return nil
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode queue payload for %s %s: %w", et, entityID, err)
		}
		raw = data
	}

	item := core.NewSyncQueueItem(et, entityID, op, raw, r.clock.Now())
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode queue item: %w", err)
	}
	if err := r.store.Put(ctx, core.CollectionSyncQueue, item.ID, data); err != nil {
		return fmt.Errorf("append queue item: %w", err)
	}

	if r.logger != nil {
		r.logger.Debug("queued offline mutation", "entity", et, "id", entityID, "op", op)
	}
	return nil
}
