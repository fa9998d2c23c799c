package notes

import (
	"context"

	"github.com/notelet/notelet/pkg/core"
)

// BulkResult reports the outcome of a best-effort multi-note operation.
// Failures never abort the batch; each failed id carries its own error.
type BulkResult struct {
	Succeeded []string
	Failed    map[string]error
}

func (br *BulkResult) ok(id string) { br.Succeeded = append(br.Succeeded, id) }

func (br *BulkResult) fail(id string, err error) {
	if br.Failed == nil {
		br.Failed = make(map[string]error)
	}
	br.Failed[id] = err
}

// BulkArchive archives each note in ids.
func (r *Repository) BulkArchive(ctx context.Context, ids []string) BulkResult {
	return r.bulk(ctx, ids, func(n *core.Note) error { n.Archive(); return nil })
}

// BulkUnarchive unarchives each note in ids.
func (r *Repository) BulkUnarchive(ctx context.Context, ids []string) BulkResult {
	return r.bulk(ctx, ids, func(n *core.Note) error { n.Unarchive(); return nil })
}

// BulkTrash moves each note in ids to the trash.
func (r *Repository) BulkTrash(ctx context.Context, ids []string) BulkResult {
	return r.bulk(ctx, ids, func(n *core.Note) error { n.MoveToTrash(r.clock.Now()); return nil })
}

// BulkRestore restores each note in ids from the trash.
func (r *Repository) BulkRestore(ctx context.Context, ids []string) BulkResult {
	return r.bulk(ctx, ids, func(n *core.Note) error { n.RestoreFromTrash(); return nil })
}

// BulkAddLabel attaches a label to each note in ids. The label must exist.
func (r *Repository) BulkAddLabel(ctx context.Context, ids []string, labelID string) BulkResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.loadLabel(ctx, labelID); err != nil {
		var res BulkResult
		for _, id := range ids {
			res.fail(id, err)
		}
		return res
	}
	return r.bulkLocked(ctx, ids, func(n *core.Note) error { n.AddLabel(labelID); return nil })
}

// BulkDelete permanently deletes each note in ids.
func (r *Repository) BulkDelete(ctx context.Context, ids []string) BulkResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res BulkResult
	for _, id := range ids {
		if err := r.delete(ctx, id); err != nil {
			res.fail(id, err)
			continue
		}
		res.ok(id)
	}
	return res
}

func (r *Repository) bulk(ctx context.Context, ids []string, mutate func(*core.Note) error) BulkResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bulkLocked(ctx, ids, mutate)
}

func (r *Repository) bulkLocked(ctx context.Context, ids []string, mutate func(*core.Note) error) BulkResult {
	var res BulkResult
	for _, id := range ids {
		if _, err := r.update(ctx, id, mutate); err != nil {
			res.fail(id, err)
			continue
		}
		res.ok(id)
	}
	return res
}
