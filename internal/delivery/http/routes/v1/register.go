package v1

import (
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/user"
	"job-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the constructed handlers. A nil handler leaves its routes unregistered.
type Deps struct {
	AuthMw       *middleware.AuthMiddleware
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Jobs         *handler.JobHandler
	Applications *handler.ApplicationHandler
	Users        *handler.UserHandler
	Admin        *handler.AdminHandler
	WS           *ws.Handler
}

func Register(r fiber.Router, deps Deps) {
	if r == nil || deps.AuthMw == nil {
		return
	}
	auth := deps.AuthMw.Middleware()

	if deps.Health != nil {
		deps.Health.RegisterRoutes(r)
	}
	if deps.WS != nil {
		r.Get("/ws", deps.WS.HandleNotifications)
	}
	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if deps.Jobs != nil {
		RegisterJobs(r.Group("/jobs"), deps.AuthMw, deps.Jobs)
	}

	// Everything below requires a bearer token.
	if deps.Applications != nil {
		deps.Applications.RegisterRoutes(r.Group("/applications", auth))
	}
	if deps.Users != nil {
		deps.Users.RegisterRoutes(r.Group("/users", auth))
	}
	if deps.Admin != nil {
		deps.Admin.RegisterRoutes(r.Group("/admin", auth, middleware.RequireRoles(user.RoleAdmin)))
	}
}
