package auth

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/form-response-service/internal/domain"
	"github.com/spec-kit/form-response-service/internal/repository"
	apperrors "github.com/spec-kit/form-response-service/pkg/errorutil"
)

const userKey = "auth_user"

// Middleware resolves the caller's identity and loads the user record.
// Callers identify themselves either with a plain X-User-Id header or a
// Bearer JWT; both resolve through the same user repository.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. A missing identity is
// UNAUTHENTICATED, a syntactically invalid one is MALFORMED, and an identity
// that resolves to no known user is UNAUTHENTICATED again.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	userID, err := m.resolveUserID(c)
	if err != nil {
		return err
	}

	user, err := m.users.GetByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewUnauthenticated("unknown user")
		}
		return apperrors.MapError(err)
	}

	c.Locals(userKey, user)
	return c.Next()
}

func (m *Middleware) resolveUserID(c *fiber.Ctx) (int64, error) {
	if header := c.Get("X-User-Id"); header != "" {
		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil {
			return 0, apperrors.NewMalformed("invalid X-User-Id header")
		}
		return userID, nil
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, apperrors.NewUnauthenticated("missing identity header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return 0, apperrors.NewMalformed("invalid authorization header")
	}
	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return 0, apperrors.NewMalformed("invalid token")
	}
	return claims.UserID, nil
}

// CurrentUser retrieves the authenticated user from the request context.
func CurrentUser(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
