package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Label is a user-defined tag. Names are unique case-insensitively; notes
// reference labels by id (many-to-many, no ownership).
type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Order     float64   `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *Label) Key() string           { return l.ID }
func (l *Label) OrderKey() float64     { return l.Order }
func (l *Label) SetOrderKey(v float64) { l.Order = v }

// NewLabel creates a label with a fresh id.
func NewLabel(name string, order float64, now time.Time) *Label {
	return &Label{
		ID:        uuid.NewString(),
		Name:      name,
		Order:     order,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeLabelName is the canonical form used for uniqueness checks.
func NormalizeLabelName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateLabelName rejects empty or whitespace-only names.
func ValidateLabelName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Validation("name", "label name cannot be empty")
	}
	return nil
}
