package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/form-response-service/internal/config"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/events"
	"github.com/spec-kit/form-response-service/internal/repository"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// NotificationService computes recipient sets for domain events and records
// one notification per recipient. The acting user is always excluded from the
// recipient set of its own event.
type NotificationService struct {
	notifications repository.NotificationRepository
	responses     repository.FormResponseRepository
	messages      repository.MessageRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NotificationDependencies bundles requirements for the notification service.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	ResponseRepo     repository.FormResponseRepository
	MessageRepo      repository.MessageRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
}

// NotificationSummary is the unread view for one user: all notifications
// newest first, plus the unread count among them.
type NotificationSummary struct {
	UnreadCount int
	Items       []domain.Notification
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		responses:     deps.ResponseRepo,
		messages:      deps.MessageRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		cfg:           cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventResponseAssigned, n.handleResponseAssigned)
	n.dispatcher.Subscribe(events.EventResponseStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventResponseMessageAdded, n.handleMessageAdded)
}

func (n *NotificationService) handleResponseAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AssignedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	if payload.AssignedUserID == event.ActorID {
		return nil
	}
	actorName, err := n.actorName(ctx, event.ActorID)
	if err != nil {
		n.logger.Warn("assignment notification skipped", zap.Int64("actor_id", event.ActorID), zap.Error(err))
		return err
	}
	text := fmt.Sprintf("You have been assigned to form response #%d by %s.", event.FormResponseID, actorName)
	return n.record(ctx, payload.AssignedUserID, event, text, domain.NotificationKindAssignment)
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.StatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	response, err := n.responses.GetByID(ctx, event.FormResponseID)
	if err != nil {
		return err
	}
	actorName, err := n.actorName(ctx, event.ActorID)
	if err != nil {
		return err
	}

	// the payload carries the assignee as of the change, not the stored one:
	// an assignment in the same patch must not pull the new assignee in here.
	recipients := map[int64]struct{}{response.CreatedByID: {}}
	if payload.AssignedUserID != nil {
		recipients[*payload.AssignedUserID] = struct{}{}
	}
	delete(recipients, event.ActorID)

	text := fmt.Sprintf("Form response #%d status changed to %s by %s.", response.ID, payload.NewStatus, actorName)
	for _, recipient := range sortedRecipients(recipients) {
		if err := n.record(ctx, recipient, event, text, domain.NotificationKindStatusChange); err != nil {
			return err
		}
	}
	return nil
}

func (n *NotificationService) handleMessageAdded(ctx context.Context, event events.Event) error {
	response, err := n.responses.GetByID(ctx, event.FormResponseID)
	if err != nil {
		return err
	}

	recipients := map[int64]struct{}{response.CreatedByID: {}}
	if response.AssignedUserID != nil {
		recipients[*response.AssignedUserID] = struct{}{}
	}
	messages, err := n.messages.ListByResponse(ctx, response.ID)
	if err != nil {
		return err
	}
	for _, message := range messages {
		recipients[message.AuthorID] = struct{}{}
	}
	delete(recipients, event.ActorID)

	text := fmt.Sprintf("New comment on form response #%d.", response.ID)
	for _, recipient := range sortedRecipients(recipients) {
		if err := n.record(ctx, recipient, event, text, domain.NotificationKindMessage); err != nil {
			return err
		}
	}
	return nil
}

func (n *NotificationService) record(ctx context.Context, recipientID int64, event events.Event, text string, kind domain.NotificationKind) error {
	responseID := event.FormResponseID
	notification := &domain.Notification{
		UserID:         recipientID,
		FormResponseID: &responseID,
		Message:        text,
		Kind:           kind,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Warn("notification create failed",
			zap.Int64("recipient_id", recipientID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		return err
	}
	n.sendEmailNotificationStub(ctx, recipientID, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// UnreadSummary returns every notification for the user newest first, with
// the count of those still unread.
func (n *NotificationService) UnreadSummary(ctx context.Context, userID int64) (*NotificationSummary, error) {
	items, err := n.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	unread := 0
	for _, item := range items {
		if !item.IsRead {
			unread++
		}
	}
	return &NotificationSummary{UnreadCount: unread, Items: items}, nil
}

// MarkRead flips the read flag if the notification exists and belongs to the
// user. The flag never flips back.
func (n *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	ok, err := n.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !ok {
		return apperrors.NewNotFound("notification", map[string]any{"notification_id": id})
	}
	return nil
}

func (n *NotificationService) actorName(ctx context.Context, actorID int64) (string, error) {
	actor, err := n.users.GetByID(ctx, actorID)
	if err != nil {
		return "", err
	}
	return actor.FullName, nil
}

func sortedRecipients(recipients map[int64]struct{}) []int64 {
	result := make([]int64, 0, len(recipients))
	for recipient := range recipients {
		result = append(result, recipient)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, recipientID int64, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("recipient_id", recipientID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("form_response_id", event.FormResponseID),
		zap.String("event_type", string(event.Type)))
}
