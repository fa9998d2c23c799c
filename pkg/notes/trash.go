package notes

import (
	"context"
	"time"

	"github.com/notelet/notelet/pkg/core"
)

// MoveToTrash soft-deletes a note. The note keeps its data but leaves all
// default views until restored or expired.
func (r *Repository) MoveToTrash(ctx context.Context, id string) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(ctx, id, func(n *core.Note) error {
		n.MoveToTrash(r.clock.Now())
		return nil
	})
}

// RestoreFromTrash brings a trashed note back into the active views.
func (r *Repository) RestoreFromTrash(ctx context.Context, id string) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.update(ctx, id, func(n *core.Note) error {
		n.RestoreFromTrash()
		return nil
	})
}

// PermanentlyDelete removes a note for good, trashed or not.
func (r *Repository) PermanentlyDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.delete(ctx, id)
}

// EmptyTrash permanently deletes every trashed note and returns their ids.
func (r *Repository) EmptyTrash(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.purgeTrashed(ctx, func(core.Note) bool { return true })
}

// SweepExpiredTrash permanently deletes trashed notes whose retention window
// has passed. Returns the ids of deleted notes so dependent indices can be
// invalidated. The retention period comes from settings.
func (r *Repository) SweepExpiredTrash(ctx context.Context, now time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := r.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	retention := time.Duration(settings.TrashRetentionDays) * 24 * time.Hour

	return r.purgeTrashed(ctx, func(n core.Note) bool {
		return n.TrashedAt != nil && now.Sub(*n.TrashedAt) > retention
	})
}

func (r *Repository) purgeTrashed(ctx context.Context, expired func(core.Note) bool) ([]string, error) {
	all, err := r.loadNotes(ctx)
	if err != nil {
		return nil, err
	}

	var deleted []string
	for _, n := range all {
		if !n.Trashed || !expired(*n) {
			continue
		}
		if err := r.delete(ctx, n.ID); err != nil {
			return deleted, err
		}
		deleted = append(deleted, n.ID)
	}
	return deleted, nil
}
