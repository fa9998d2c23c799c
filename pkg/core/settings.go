package core

import "time"

// DefaultTrashRetentionDays is how long a trashed note survives before the
// startup sweep removes it.
const DefaultTrashRetentionDays = 7

// AppSettings is the single settings document persisted in the settings
// collection.
type AppSettings struct {
	DefaultColor       Color     `json:"defaultColor"`
	ViewMode           string    `json:"viewMode"` // "grid" or "list"
	TrashRetentionDays int       `json:"trashRetentionDays"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() AppSettings {
	return AppSettings{
		DefaultColor:       ColorDefault,
		ViewMode:           "grid",
		TrashRetentionDays: DefaultTrashRetentionDays,
	}
}
