package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/form-response-service/internal/api/dto"
	"github.com/spec-kit/form-response-service/internal/auth"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/service"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// MessagesHandler manages the comment thread on a form response. Existence
// and view access are verified here, before the chat service runs.
type MessagesHandler struct {
	responses *service.ResponseService
	chat      *service.ChatService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(responseService *service.ResponseService, chatService *service.ChatService) *MessagesHandler {
	return &MessagesHandler{responses: responseService, chat: chatService}
}

// Create POST /form-responses/:id/messages.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
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

	var req dto.CreateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformed("invalid payload")
	}
	if strings.TrimSpace(req.Body) == "" {
		return apperrors.NewValidationError("body required", nil)
	}

	message, err := h.chat.CreateMessage(c.Context(), responseID, user.ID, req.Body, req.ParentID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": messageView(message)})
}

// List GET /form-responses/:id/messages.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
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

	messages, err := h.chat.ListMessages(c.Context(), responseID)
	if err != nil {
		return err
	}
	items := make([]dto.MessageView, 0, len(messages))
	for i := range messages {
		items = append(items, messageView(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func messageView(message *domain.Message) dto.MessageView {
	return dto.MessageView{
		ID:             message.ID,
		FormResponseID: message.FormResponseID,
		AuthorID:       message.AuthorID,
		Body:           message.Body,
		ParentID:       message.ParentID,
		CreatedAt:      message.CreatedAt,
	}
}
