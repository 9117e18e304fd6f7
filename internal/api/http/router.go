package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/form-response-service/internal/api/http/handlers"
	"github.com/spec-kit/form-response-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Responses      *handlers.ResponsesHandler
	Messages       *handlers.MessagesHandler
	Notifications  *handlers.NotificationsHandler
	Events         *handlers.EventsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Users.Register)
	authGroup.Post("/users/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/form-responses", cfg.Responses.Create)
	protected.Get("/form-responses/:id", cfg.Responses.Get)
	protected.Patch("/form-responses/:id", cfg.Responses.Update)

	protected.Post("/form-responses/:id/messages", cfg.Messages.Create)
	protected.Get("/form-responses/:id/messages", cfg.Messages.List)
	protected.Get("/form-responses/:id/events", cfg.Events.Drain)

	protected.Get("/notifications", cfg.Notifications.Summary)
	protected.Post("/notifications/:id/read", cfg.Notifications.MarkRead)

	protected.Post("/users/:id/admin", cfg.Users.SetAdmin)
}
