package models

import "encoding/json"

// EventKind enumerates the broadcast event types.
type EventKind string

const (
	EventRosterAdded         EventKind = "roster-added"
	EventRosterUpdated       EventKind = "roster-updated"
	EventRosterRemoved       EventKind = "roster-removed"
	EventRosterStatusChanged EventKind = "roster-status-changed"
	EventEmotionRecorded     EventKind = "emotion-recorded"
	EventGameRecorded        EventKind = "game-recorded"
)

// Envelope is the transient payload delivered to dashboard connections.
// OwnerID is the supervisor scope entitled to receive it; it exists only
// in transit and is never persisted.
type Envelope struct {
	Kind    EventKind       `json:"kind"`
	OwnerID string          `json:"ownerId"`
	Payload json.RawMessage `json:"payload"`
}
