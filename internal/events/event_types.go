package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventResponseStatusChanged EventType = "response_status_changed"
	EventResponseAssigned      EventType = "response_assigned"
	EventResponseMessageAdded  EventType = "response_message_added"
)

// Event represents a domain event emitted by services. ActorID identifies the
// user whose call produced the event; fan-out policy excludes that user from
// every recipient set.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	FormResponseID int64       `json:"form_response_id"`
	ActorID        int64       `json:"actor_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// StatusChangedPayload payload. AssignedUserID is the assignee at the moment
// of the change; an assignment applied in the same patch is not yet visible.
type StatusChangedPayload struct {
	OldStatus      string `json:"old_status"`
	NewStatus      string `json:"new_status"`
	AssignedUserID *int64 `json:"assigned_user_id,omitempty"`
}

// AssignedPayload payload.
type AssignedPayload struct {
	AssignedUserID int64 `json:"assigned_user_id"`
}

// MessageAddedPayload payload.
type MessageAddedPayload struct {
	MessageID   int64  `json:"message_id"`
	AuthorID    int64  `json:"author_id"`
	ParentID    *int64 `json:"parent_id,omitempty"`
	BodyPreview string `json:"body_preview"`
}
