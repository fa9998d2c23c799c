package notes

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/notelet/notelet/pkg/core"
)

// Active returns the board view: non-archived, non-trashed notes, pinned
// first, each group sorted by order.
func (r *Repository) Active(ctx context.Context) ([]core.Note, error) {
	out, err := r.filtered(ctx, func(n core.Note) bool {
		return !n.Archived && !n.Trashed
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].Order < out[j].Order
	})
	return out, nil
}

// Archived returns archived, non-trashed notes sorted by order.
func (r *Repository) Archived(ctx context.Context) ([]core.Note, error) {
	return r.filtered(ctx, func(n core.Note) bool {
		return n.Archived && !n.Trashed
	})
}

// Trashed returns the trash view, most recently trashed first.
func (r *Repository) Trashed(ctx context.Context) ([]core.Note, error) {
	out, err := r.filtered(ctx, func(n core.Note) bool { return n.Trashed })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].TrashedAt, out[j].TrashedAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return out, nil
}

// ByLabel returns non-trashed notes carrying the given label.
func (r *Repository) ByLabel(ctx context.Context, labelID string) ([]core.Note, error) {
	return r.filtered(ctx, func(n core.Note) bool {
		return !n.Trashed && n.HasLabel(labelID)
	})
}

// WithReminder returns non-trashed notes with a reminder due at or before
// the deadline, soonest first.
func (r *Repository) WithReminder(ctx context.Context, due time.Time) ([]core.Note, error) {
	out, err := r.filtered(ctx, func(n core.Note) bool {
		return !n.Trashed && n.Reminder != nil && !n.Reminder.After(due)
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Reminder.Before(*out[j].Reminder)
	})
	return out, nil
}

// MoveNote repositions a note on the board. All notes are renumbered to
// consecutive integers afterwards.
func (r *Repository) MoveNote(ctx context.Context, id string, targetIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadNotes(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Order < all[j].Order })
	prior := persistedOrders(all)

	moved, err := core.Move(all, id, targetIndex)
	if err != nil {
		return err
	}
	return r.persistOrder(ctx, moved, prior)
}

// ReorderNotes applies an explicit ordering. Notes listed in orderedIDs come
// first, in the given order; unlisted notes follow in their prior relative
// order. Unknown ids fail with ErrNotFound before anything is written.
func (r *Repository) ReorderNotes(ctx context.Context, orderedIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.loadNotes(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Order < all[j].Order })
	prior := persistedOrders(all)

	byID := make(map[string]*core.Note, len(all))
	for _, n := range all {
		byID[n.ID] = n
	}

	next := make([]*core.Note, 0, len(all))
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		n, ok := byID[id]
		if !ok {
			return fmt.Errorf("note %s: %w", id, core.ErrNotFound)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, n)
	}
	for _, n := range all {
		if !seen[n.ID] {
			next = append(next, n)
		}
	}
	return r.persistOrder(ctx, next, prior)
}

// persistOrder assigns consecutive order keys and writes back only the notes
// whose stored key changed. Move rewrites orders in memory, so the comparison
// must run against the orders as loaded, never the current fields.
func (r *Repository) persistOrder(ctx context.Context, ordered []*core.Note, prior map[string]float64) error {
	now := r.clock.Now()
	online := r.conn.Online()

	for i, n := range ordered {
		n.Order = float64(i)
		if prior[n.ID] == n.Order {
			continue
		}
		n.Touch(now, online)
		if err := r.saveNote(ctx, n); err != nil {
			return err
		}
		if err := r.enqueue(ctx, core.EntityNote, n.ID, core.OpUpdate, n); err != nil {
			return err
		}
	}
	return nil
}

// persistedOrders snapshots the order keys as loaded, before any in-memory
// renumbering.
func persistedOrders(all []*core.Note) map[string]float64 {
	out := make(map[string]float64, len(all))
	for _, n := range all {
		out[n.ID] = n.Order
	}
	return out
}

func (r *Repository) filtered(ctx context.Context, keep func(core.Note) bool) ([]core.Note, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.Note, 0, len(all))
	for _, n := range all {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out, nil
}
