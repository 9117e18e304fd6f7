package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/form-response-service/internal/broadcast"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/events"
	"github.com/spec-kit/form-response-service/internal/repository"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// ChatService orchestrates thread messages: persist, then notification
// fan-out, then broadcast enqueue, in that order. The boundary verifies the
// response exists and the author may view it before calling in.
type ChatService struct {
	messages   repository.MessageRepository
	dispatcher events.Dispatcher
	queue      broadcast.Queue
	logger     *zap.Logger
}

// ChatDependencies bundles requirements for the chat service.
type ChatDependencies struct {
	MessageRepo repository.MessageRepository
	Dispatcher  events.Dispatcher
	Queue       broadcast.Queue
	Logger      *zap.Logger
}

// NewChatService constructs the service.
func NewChatService(deps ChatDependencies) *ChatService {
	return &ChatService{
		messages:   deps.MessageRepo,
		dispatcher: deps.Dispatcher,
		queue:      deps.Queue,
		logger:     deps.Logger,
	}
}

// CreateMessage persists a message and triggers its side effects. The message
// is durably recorded before fan-out and enqueue are attempted; failures in
// either are logged and never undo the message.
func (s *ChatService) CreateMessage(ctx context.Context, responseID, authorID int64, body string, parentID *int64) (*domain.Message, error) {
	// the body is stored as received; the boundary rejects blank bodies
	message := &domain.Message{
		FormResponseID: responseID,
		AuthorID:       authorID,
		Body:           body,
		ParentID:       parentID,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventResponseMessageAdded,
		FormResponseID: responseID,
		ActorID:        authorID,
		Payload: events.MessageAddedPayload{
			MessageID:   message.ID,
			AuthorID:    message.AuthorID,
			ParentID:    message.ParentID,
			BodyPreview: stringPreview(message.Body, 120),
		},
	})

	if s.queue != nil {
		if err := s.queue.Enqueue(ctx, responseID, broadcast.MessageCreated(message)); err != nil {
			s.logger.Warn("broadcast enqueue failed",
				zap.Int64("form_response_id", responseID),
				zap.Int64("message_id", message.ID),
				zap.Error(err))
		}
	}
	return message, nil
}

// ListMessages returns the thread ordered ascending by creation time, ties
// broken by id.
func (s *ChatService) ListMessages(ctx context.Context, responseID int64) ([]domain.Message, error) {
	messages, err := s.messages.ListByResponse(ctx, responseID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return messages, nil
}

func (s *ChatService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// stringPreview truncates on rune boundaries so the result is always valid
// UTF-8.
func stringPreview(body string, max int) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
