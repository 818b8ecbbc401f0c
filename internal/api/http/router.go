package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workorder-service/internal/api/http/handlers"
	"github.com/spec-kit/workorder-service/internal/auth"
	"github.com/spec-kit/workorder-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Workflow       *handlers.WorkflowHandler
	Directory      *handlers.DirectoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/accounts", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Auth.CreateAccount)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	protected.Get("/departments", cfg.Directory.ListDepartments)
	protected.Get("/departments/:name/processors", auth.RequireRole(domain.RoleProcessor), cfg.Directory.ListProcessors)

	tickets := protected.Group("/tickets")
	tickets.Post("", cfg.Tickets.Submit)
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/statistics", cfg.Tickets.Statistics)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Get("/:id/records", cfg.Tickets.Records)
	tickets.Get("/:id/status-logs", cfg.Tickets.StatusLogs)
	tickets.Get("/:id/attachments", cfg.Tickets.Attachments)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/reactions", cfg.Tickets.React)

	// Transition verbs need at least processor rank; the permission gate
	// applies the department-level rules on top.
	workflow := tickets.Group("", auth.RequireRole(domain.RoleProcessor))
	workflow.Post("/:id/dispatch", cfg.Workflow.Dispatch)
	workflow.Post("/:id/reassign", cfg.Workflow.Reassign)
	workflow.Post("/:id/accept", cfg.Workflow.Accept)
	workflow.Post("/:id/reply", cfg.Workflow.Reply)
	workflow.Post("/:id/reject", cfg.Workflow.Reject)
	workflow.Post("/:id/reject-reply", cfg.Workflow.RejectReply)
	workflow.Post("/:id/collaborate", cfg.Workflow.Collaborate)
	workflow.Post("/:id/close", cfg.Workflow.Close)
	workflow.Post("/:id/reopen", cfg.Workflow.Reopen)

	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Workflow.Delete)
}
