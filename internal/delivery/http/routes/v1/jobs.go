package v1

import (
	"job-portal/internal/delivery/http/handler"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/user"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mixes public and protected routes, so auth is attached per route.
// Fixed segments go before "/:id".
func RegisterJobs(r fiber.Router, authMw *middleware.AuthMiddleware, jobHandler *handler.JobHandler) {
	if r == nil || authMw == nil || jobHandler == nil {
		return
	}

	optional := authMw.Optional()
	required := authMw.Middleware()
	posters := middleware.RequireRoles(user.RoleRecruiter, user.RoleAdmin)

	r.Get("/", optional, jobHandler.List)
	r.Get("/search", optional, jobHandler.Search)
	r.Get("/matching", required, middleware.RequireRoles(user.RoleJobSeeker), jobHandler.Matching)
	r.Get("/mine", required, posters, jobHandler.Mine)
	r.Post("/", required, posters, jobHandler.Create)
	r.Get("/:id", optional, jobHandler.Get)
}
