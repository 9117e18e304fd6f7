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

// UsersHandler manages registration, login, and the admin flag.
type UsersHandler struct {
	authService *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{authService: authService}
}

// Register POST /auth/users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformed("invalid payload")
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.FullName) == "" || req.Password == "" {
		return apperrors.NewValidationError("full_name, email, password required", nil)
	}

	user, token, exp, err := h.authService.RegisterUser(c.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"user": userView(user),
		"auth": dto.AuthResponse{
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: exp,
		},
	}})
}

// Login POST /auth/users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformed("invalid payload")
	}

	user, token, exp, err := h.authService.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: exp,
	}})
}

// SetAdmin POST /users/:id/admin.
func (h *UsersHandler) SetAdmin(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthenticated("user required")
	}
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformed("invalid payload")
	}
	if err := h.authService.SetAdmin(c.Context(), actor, userID, req.IsAdmin); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"user_id": userID, "is_admin": req.IsAdmin}})
}

func userView(user *domain.User) dto.UserView {
	return dto.UserView{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}
