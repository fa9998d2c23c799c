package core

// EventType represents the kind of change observed in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a persisted entity, emitted by watchable
// stores so UI collaborators can refresh views and the search index.
type Event struct {
	Type       EventType
	Collection Collection
	Key        string
	Timestamp  int64 // Unix timestamp
}

// String implements fmt.Stringer (and the lifecycle event contract).
func (e Event) String() string {
	return string(e.Type) + " " + string(e.Collection) + "/" + e.Key
}
