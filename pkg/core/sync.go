package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntityType names the kind of entity a sync queue item refers to.
type EntityType string

const (
	EntityNote  EntityType = "note"
	EntityLabel EntityType = "label"
)

// Operation names the mutation recorded in a sync queue item.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// SyncQueueItem records one mutation made while offline. The queue is an
// append-only log of intent: entries are never deduplicated or compacted,
// and transmission to a remote store is outside the core.
type SyncQueueItem struct {
	ID         string          `json:"id"`
	EntityType EntityType      `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Operation  Operation       `json:"operation"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	RetryCount int             `json:"retryCount"`
}

// NewSyncQueueItem builds a queue entry for a mutation on the given entity.
func NewSyncQueueItem(et EntityType, entityID string, op Operation, payload json.RawMessage, now time.Time) SyncQueueItem {
	return SyncQueueItem{
		ID:         uuid.NewString(),
		EntityType: et,
		EntityID:   entityID,
		Operation:  op,
		Payload:    payload,
		Timestamp:  now,
	}
}
