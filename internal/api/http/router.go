package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/college-records/internal/api/http/handlers"
	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Students       *handlers.StudentsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The auth middleware runs for every
// request and only attaches identity; enforcement happens in the per-group
// role guards.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.AuthMiddleware.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)

	students := app.Group("/students", auth.RequireRole(domain.RoleAdmin, domain.RoleStaff))
	students.Get("/", cfg.Students.List)
	students.Get("/:studentId", cfg.Students.Get)
	students.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Students.Create)
	students.Put("/:studentId", cfg.Students.Update)
	students.Delete("/:studentId", auth.RequireRole(domain.RoleAdmin), cfg.Students.Delete)

	dashboard := app.Group("/dashboard")
	dashboard.Get("/stats", auth.RequireRole(domain.RoleAdmin, domain.RoleStaff), cfg.Dashboard.Stats)
	dashboard.Get("/health", cfg.Dashboard.Health)
}
