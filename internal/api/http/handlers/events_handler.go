package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/form-response-service/internal/auth"
	"github.com/spec-kit/form-response-service/internal/broadcast"
	"github.com/spec-kit/form-response-service/internal/service"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// EventsHandler exposes the producer-side broadcast queue to polling
// observers. Draining is destructive: each event is delivered to at most one
// drain call.
type EventsHandler struct {
	responses *service.ResponseService
	queue     broadcast.Queue
}

// NewEventsHandler constructs handler.
func NewEventsHandler(responseService *service.ResponseService, queue broadcast.Queue) *EventsHandler {
	return &EventsHandler{responses: responseService, queue: queue}
}

// Drain GET /form-responses/:id/events.
func (h *EventsHandler) Drain(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	responseID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.responses.Get(c.Context(), user, responseID); err != nil {
		return err
	}

	drained, err := h.queue.Drain(c.Context(), responseID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": drained})
}
