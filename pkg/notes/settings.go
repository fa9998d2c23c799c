package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/notelet/notelet/pkg/core"
)

// Settings returns the stored application settings, or the defaults when
// none were saved yet.
func (r *Repository) Settings(ctx context.Context) (core.AppSettings, error) {
	return r.loadSettings(ctx)
}

// SaveSettings persists the application settings. A non-positive trash
// retention is rejected.
func (r *Repository) SaveSettings(ctx context.Context, s core.AppSettings) (core.AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.TrashRetentionDays <= 0 {
		return core.AppSettings{}, core.Validation("trashRetentionDays", "must be positive")
	}
	if s.DefaultColor != "" && !s.DefaultColor.Valid() {
		return core.AppSettings{}, core.Validation("defaultColor", fmt.Sprintf("unknown color %q", s.DefaultColor))
	}
	s.UpdatedAt = r.clock.Now()

	data, err := json.Marshal(s)
	if err != nil {
		return core.AppSettings{}, fmt.Errorf("encode settings: %w", err)
	}
	if err := r.store.Put(ctx, core.CollectionSettings, core.SettingsKey, data); err != nil {
		return core.AppSettings{}, fmt.Errorf("save settings: %w", err)
	}
	return s, nil
}

func (r *Repository) loadSettings(ctx context.Context) (core.AppSettings, error) {
	data, err := r.store.Get(ctx, core.CollectionSettings, core.SettingsKey)
	if errors.Is(err, core.ErrNotFound) {
		return core.DefaultSettings(), nil
	}
	if err != nil {
		return core.AppSettings{}, fmt.Errorf("load settings: %w", err)
	}

	var s core.AppSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return core.AppSettings{}, core.Storagef(err, "decode settings")
	}
	if s.TrashRetentionDays <= 0 {
		s.TrashRetentionDays = core.DefaultTrashRetentionDays
	}
	return s, nil
}
