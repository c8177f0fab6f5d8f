package core

import (
	"fmt"
	"time"
)

// EventType represents the type of change observed on a storage slot.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event reports a change to a slot made outside the current process.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s at %s", e.Type, e.Key, time.Unix(e.Timestamp, 0).UTC().Format(time.RFC3339))
}
