package core

import (
	"context"
	"time"
)

// Collection names one of the keyed collections of the storage port.
type Collection string

const (
	CollectionNotes     Collection = "notes"
	CollectionLabels    Collection = "labels"
	CollectionSettings  Collection = "settings"
	CollectionSyncQueue Collection = "syncqueue"
)

// SettingsKey is the single key used inside the settings collection.
const SettingsKey = "settings"

// Store defines the key-value persistence port consumed by the repository.
// Adhering to this interface keeps the core independent of the underlying
// storage mechanism (in-memory, filesystem, SQLite, browser storage, ...).
//
// Contract: Get returns ErrNotFound (possibly wrapped) for an absent key;
// any other failure is surfaced as a StorageError. Values are opaque bytes;
// serialization belongs to the caller.
type Store interface {
	// Initialize ensures the underlying storage is ready
	// (create directories, open the database, run migrations).
	Initialize(ctx context.Context) error

	// Get retrieves the value stored under collection/key.
	Get(ctx context.Context, c Collection, key string) ([]byte, error)

	// Put stores value under collection/key, creating or replacing it.
	// It must not return before the write is durable: repository methods
	// resolve only after persistence completes.
	Put(ctx context.Context, c Collection, key string, value []byte) error

	// Delete removes collection/key. Deleting an absent key is not an error.
	Delete(ctx context.Context, c Collection, key string) error

	// List returns every key/value pair in the collection.
	List(ctx context.Context, c Collection) (map[string][]byte, error)

	// Close releases any resources held by the store.
	Close() error
}

// Watchable is implemented by stores that can observe external changes to
// the persisted data (e.g. another process editing the vault directory).
type Watchable interface {
	// Watch emits an event for every change matching pattern
	// ("collection/key" glob). The channel closes when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Connectivity reports whether the application currently has a network
// connection. It only decides whether mutations are appended to the sync
// queue; the core never talks to the network itself.
type Connectivity interface {
	// Online reports the current connectivity state.
	Online() bool

	// Subscribe registers fn to run on every online/offline transition.
	// The returned function cancels the subscription.
	Subscribe(fn func(online bool)) (cancel func())
}

// Clock abstracts time.Now so trash expiry and timestamps are testable.
type Clock interface {
	Now() time.Time
}
