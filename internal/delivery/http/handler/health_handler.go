package handler

import (
	"context"
	"time"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/domain"
	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type counter interface {
	Count(ctx context.Context) (int, error)
}

type clientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	db      pinger
	cache   pinger
	jobs    counter
	apps    counter
	clients clientCounter
	now     func() time.Time
}

func NewHealthHandler(db pinger, cache pinger, jobs counter, apps counter, clients clientCounter) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, jobs: jobs, apps: apps, clients: clients, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	st := domain.SystemStatus{ServerTime: h.now().UTC()}
	if h.db != nil {
		st.DatabaseHealthy = h.db.Ping(ctx) == nil
	}
	if h.cache != nil {
		st.RedisHealthy = h.cache.Ping(ctx) == nil
	}
	if st.DatabaseHealthy {
		if h.jobs != nil {
			st.TotalJobs, _ = h.jobs.Count(ctx)
		}
		if h.apps != nil {
			st.TotalApplications, _ = h.apps.Count(ctx)
		}
	}
	if h.clients != nil {
		st.WSClients = h.clients.ClientCount()
	}

	if !st.DatabaseHealthy {
		return response.Success(c, fiber.StatusServiceUnavailable, "degraded", dto.HealthResponse{Status: "degraded", SystemStatus: st})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.HealthResponse{Status: "ok", SystemStatus: st})
}
