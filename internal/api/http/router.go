package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teekoob/admin-service/internal/api/http/handlers"
	"github.com/teekoob/admin-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Admin   *handlers.AdminHandler
	Session *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Everything under /admin sits
// behind the session middleware and the admin gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authGroup.Get("/me", cfg.Session.Handle, cfg.Auth.Me)
	authGroup.Post("/password/change", cfg.Session.Handle, cfg.Auth.ChangePassword)

	admin := app.Group("/admin", cfg.Session.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Patch("/users/:id/active", cfg.Admin.SetUserActive)
	admin.Get("/books", cfg.Admin.ListBooks)
	admin.Get("/books/:id", cfg.Admin.GetBook)
}
