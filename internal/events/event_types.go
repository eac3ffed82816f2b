package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRecordCreated EventType = "record_created"
	EventRecordUpdated EventType = "record_updated"
	EventRecordDeleted EventType = "record_deleted"
)

// Event describes a committed change to one record.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Collection string    `json:"collection"`
	Key        string    `json:"key"`
	Timestamp  time.Time `json:"timestamp"`
	// Fields lists the field names touched by an update.
	Fields []string `json:"fields,omitempty"`
}
