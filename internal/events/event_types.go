package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventContentChanged  EventType = "content_changed"
	EventContactReceived EventType = "contact_received"
)

// ContentKind names the public listing a mutation affects.
type ContentKind string

const (
	KindProjects ContentKind = "projects"
	KindSkills   ContentKind = "skills"
	KindAbout    ContentKind = "about"
	KindBlog     ContentKind = "blog"
)

// Action describes what happened to a content record.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ContentChangedPayload payload.
type ContentChangedPayload struct {
	Kind     ContentKind `json:"kind"`
	EntityID string      `json:"entity_id,omitempty"`
	Action   Action      `json:"action"`
}

// ContactReceivedPayload payload.
type ContactReceivedPayload struct {
	MessageID      string `json:"message_id"`
	SenderName     string `json:"sender_name"`
	SenderEmail    string `json:"sender_email"`
	MessagePreview string `json:"message_preview"`
}

// New stamps an event with a fresh id and timestamp.
func New(eventType EventType, actorID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
