package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/notelet/notelet/pkg/core"
)

// PendingSync returns the offline mutation log in chronological order.
func (r *Repository) PendingSync(ctx context.Context) ([]core.SyncQueueItem, error) {
	entries, err := r.store.List(ctx, core.CollectionSyncQueue)
	if err != nil {
		return nil, fmt.Errorf("list sync queue: %w", err)
	}

	out := make([]core.SyncQueueItem, 0, len(entries))
	for key, data := range entries {
		var item core.SyncQueueItem
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, core.Storagef(err, "decode queue item %s", key)
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// ClearSyncQueue drops every queued mutation. Used after a successful replay
// against the remote, or to discard offline history deliberately.
func (r *Repository) ClearSyncQueue(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.store.List(ctx, core.CollectionSyncQueue)
	if err != nil {
		return fmt.Errorf("list sync queue: %w", err)
	}
	for key := range entries {
		if err := r.store.Delete(ctx, core.CollectionSyncQueue, key); err != nil {
			return fmt.Errorf("clear queue item %s: %w", key, err)
		}
	}
	return nil
}
