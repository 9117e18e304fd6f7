// Package broadcast holds the producer-side event buffer for real-time
// observers: an ordered, per-response FIFO consumed destructively via drain.
package broadcast

import (
	"context"
	"time"

	"github.com/spec-kit/form-response-service/internal/domain"
)

// EventMessageCreated is the only event kind currently broadcast.
const EventMessageCreated = "message_created"

// MessagePayload is the wire shape of a broadcast message body. CreatedAt is
// RFC 3339 text so consumers can sort without parsing vendor formats.
type MessagePayload struct {
	ID             int64  `json:"id"`
	FormResponseID int64  `json:"form_response_id"`
	AuthorID       int64  `json:"author_id"`
	Body           string `json:"body"`
	ParentID       *int64 `json:"parent_id"`
	CreatedAt      string `json:"created_at"`
}

// Event is one broadcast envelope.
type Event struct {
	Event   string         `json:"event"`
	Message MessagePayload `json:"message"`
}

// MessageCreated builds the broadcast event for a newly persisted message.
func MessageCreated(message *domain.Message) Event {
	return Event{
		Event: EventMessageCreated,
		Message: MessagePayload{
			ID:             message.ID,
			FormResponseID: message.FormResponseID,
			AuthorID:       message.AuthorID,
			Body:           message.Body,
			ParentID:       message.ParentID,
			CreatedAt:      message.CreatedAt.Format(time.RFC3339Nano),
		},
	}
}

// Queue buffers events per form response. Enqueue appends in arrival order;
// Drain atomically returns the buffered sequence and empties it, so delivery
// is at-most-once per drain call.
type Queue interface {
	Enqueue(ctx context.Context, responseID int64, event Event) error
	Drain(ctx context.Context, responseID int64) ([]Event, error)
}
