package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamResourceSaved = "stream:catalog:resource:saved"
)

// ResourceSavedEvent is published after every successful resource save.
type ResourceSavedEvent struct {
	EventID      uuid.UUID        `json:"event_id"`
	ResourceID   int64            `json:"resource_id"`
	ResourceType string           `json:"resource_type"`
	Snapshot     ResourceSnapshot `json:"snapshot"`
	Author       string           `json:"author,omitempty"`
	OccurredAt   time.Time        `json:"occurred_at"`
}

// StreamMessage is one entry read from a Redis stream.
type StreamMessage struct {
	ID   string
	Data string
}
