package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/notelet/notelet/pkg/core"
)

// CreateLabel creates a label. Names are unique case-insensitively across
// the vault.
func (r *Repository) CreateLabel(ctx context.Context, name string) (core.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := core.ValidateLabelName(name); err != nil {
		return core.Label{}, err
	}
	labels, err := r.loadLabels(ctx)
	if err != nil {
		return core.Label{}, err
	}
	if taken(labels, name, "") {
		return core.Label{}, core.Validation("name", fmt.Sprintf("label %q already exists", name))
	}

	l := core.NewLabel(name, core.AppendOrder(labels), r.clock.Now())
	if err := r.saveLabel(ctx, l); err != nil {
		return core.Label{}, err
	}
	if err := r.enqueue(ctx, core.EntityLabel, l.ID, core.OpCreate, l); err != nil {
		return core.Label{}, err
	}
	return *l, nil
}

// RenameLabel changes a label's name, holding the case-insensitive
// uniqueness rule.
func (r *Repository) RenameLabel(ctx context.Context, id, name string) (core.Label, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := core.ValidateLabelName(name); err != nil {
		return core.Label{}, err
	}
	l, err := r.loadLabel(ctx, id)
	if err != nil {
		return core.Label{}, err
	}
	labels, err := r.loadLabels(ctx)
	if err != nil {
		return core.Label{}, err
	}
	if taken(labels, name, id) {
		return core.Label{}, core.Validation("name", fmt.Sprintf("label %q already exists", name))
	}

	l.Name = name
	l.UpdatedAt = r.clock.Now()
	if err := r.saveLabel(ctx, &l); err != nil {
		return core.Label{}, err
	}
	if err := r.enqueue(ctx, core.EntityLabel, l.ID, core.OpUpdate, &l); err != nil {
		return core.Label{}, err
	}
	return l, nil
}

// DeleteLabel removes a label and detaches it from every note that carries
// it. Detach failures do not abort the cascade; they are joined into the
// returned error.
func (r *Repository) DeleteLabel(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.loadLabel(ctx, id); err != nil {
		return err
	}

	all, err := r.loadNotes(ctx)
	if err != nil {
		return err
	}
	var cascade error
	for _, n := range all {
		if !n.HasLabel(id) {
			continue
		}
		if _, err := r.update(ctx, n.ID, func(n *core.Note) error {
			n.RemoveLabel(id)
			return nil
		}); err != nil {
			cascade = errors.Join(cascade, fmt.Errorf("detach label from note %s: %w", n.ID, err))
		}
	}

	if err := r.store.Delete(ctx, core.CollectionLabels, id); err != nil {
		return errors.Join(cascade, fmt.Errorf("delete label %s: %w", id, err))
	}
	if err := r.enqueue(ctx, core.EntityLabel, id, core.OpDelete, nil); err != nil {
		return errors.Join(cascade, err)
	}
	return cascade
}

// Labels returns all labels sorted by their order. Order keys are reported
// as stored.
func (r *Repository) Labels(ctx context.Context) ([]core.Label, error) {
	ptrs, err := r.loadLabels(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ptrs, func(i, j int) bool { return ptrs[i].Order < ptrs[j].Order })

	out := make([]core.Label, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	return out, nil
}

// MoveLabel repositions a label in the sidebar ordering.
func (r *Repository) MoveLabel(ctx context.Context, id string, targetIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	labels, err := r.loadLabels(ctx)
	if err != nil {
		return err
	}
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Order < labels[j].Order })

	moved, err := core.Move(labels, id, targetIndex)
	if err != nil {
		return err
	}
	now := r.clock.Now()
	for _, l := range moved {
		l.UpdatedAt = now
		if err := r.saveLabel(ctx, l); err != nil {
			return err
		}
		if err := r.enqueue(ctx, core.EntityLabel, l.ID, core.OpUpdate, l); err != nil {
			return err
		}
	}
	return nil
}

func taken(labels []*core.Label, name, excludeID string) bool {
	want := core.NormalizeLabelName(name)
	for _, l := range labels {
		if l.ID == excludeID {
			continue
		}
		if core.NormalizeLabelName(l.Name) == want {
			return true
		}
	}
	return false
}

func (r *Repository) loadLabel(ctx context.Context, id string) (core.Label, error) {
	data, err := r.store.Get(ctx, core.CollectionLabels, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.Label{}, fmt.Errorf("label %s: %w", id, core.ErrNotFound)
		}
		return core.Label{}, fmt.Errorf("load label %s: %w", id, err)
	}
	var l core.Label
	if err := json.Unmarshal(data, &l); err != nil {
		return core.Label{}, core.Storagef(err, "decode label %s", id)
	}
	return l, nil
}

func (r *Repository) loadLabels(ctx context.Context) ([]*core.Label, error) {
	entries, err := r.store.List(ctx, core.CollectionLabels)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	out := make([]*core.Label, 0, len(entries))
	for key, data := range entries {
		var l core.Label
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, core.Storagef(err, "decode label %s", key)
		}
		out = append(out, &l)
	}
	return out, nil
}

func (r *Repository) saveLabel(ctx context.Context, l *core.Label) error {
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode label %s: %w", l.ID, err)
	}
	if err := r.store.Put(ctx, core.CollectionLabels, l.ID, data); err != nil {
		return fmt.Errorf("save label %s: %w", l.ID, err)
	}
	return nil
}
