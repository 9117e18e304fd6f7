package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/form-response-service/internal/api/dto"
	"github.com/spec-kit/form-response-service/internal/auth"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/service"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// NotificationsHandler manages the per-user notification endpoints.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// Summary GET /notifications.
func (h *NotificationsHandler) Summary(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	summary, err := h.notifications.UnreadSummary(c.Context(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationView, 0, len(summary.Items))
	for i := range summary.Items {
		items = append(items, notificationView(&summary.Items[i]))
	}
	return c.JSON(fiber.Map{"data": dto.NotificationSummaryView{
		UnreadCount: summary.UnreadCount,
		Items:       items,
	}})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Context(), notificationID, user.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func notificationView(notification *domain.Notification) dto.NotificationView {
	return dto.NotificationView{
		ID:             notification.ID,
		FormResponseID: notification.FormResponseID,
		Message:        notification.Message,
		Kind:           string(notification.Kind),
		IsRead:         notification.IsRead,
		CreatedAt:      notification.CreatedAt,
	}
}
