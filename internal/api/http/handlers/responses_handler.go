package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/form-response-service/internal/api/dto"
	"github.com/spec-kit/form-response-service/internal/auth"
	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/service"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

// ResponsesHandler manages form response endpoints.
type ResponsesHandler struct {
	responses *service.ResponseService
}

// NewResponsesHandler constructs handler.
func NewResponsesHandler(responseService *service.ResponseService) *ResponsesHandler {
	return &ResponsesHandler{responses: responseService}
}

// Create POST /form-responses.
func (h *ResponsesHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	var req dto.CreateFormResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformed("invalid payload")
	}
	if req.FormID == 0 {
		return apperrors.NewValidationError("form_id required", nil)
	}

	response, err := h.responses.Create(c.Context(), user.ID, service.ResponseCreateInput{
		FormID: req.FormID,
		Data:   req.Data,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": formResponseView(response)})
}

// Get GET /form-responses/:id.
func (h *ResponsesHandler) Get(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	responseID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	response, err := h.responses.Get(c.Context(), user, responseID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": formResponseView(response)})
}

// Update PATCH /form-responses/:id.
func (h *ResponsesHandler) Update(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	responseID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateFormResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformed("invalid payload")
	}

	patch := service.ResponsePatch{AssignedUserID: req.AssignedUserID}
	if req.Status != nil && *req.Status != "" {
		status := domain.ResponseStatus(*req.Status)
		patch.Status = &status
	}

	response, err := h.responses.Update(c.Context(), user, responseID, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": formResponseView(response)})
}

func formResponseView(response *domain.FormResponse) dto.FormResponseView {
	return dto.FormResponseView{
		ID:             response.ID,
		FormID:         response.FormID,
		Data:           response.Data,
		Status:         string(response.Status),
		CreatedByID:    response.CreatedByID,
		AssignedUserID: response.AssignedUserID,
		CreatedAt:      response.CreatedAt,
		UpdatedAt:      response.UpdatedAt,
	}
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	value, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewMalformed("invalid " + name + " parameter")
	}
	return value, nil
}
