package handler

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pipeline"
	"job-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type matchRecomputer interface {
	Run(ctx context.Context, params pipeline.PrecomputeParams) (pipeline.PrecomputeSummary, error)
}

// AdminHandler starts match precompute runs in the background. runCtx bounds
// every run to the server lifetime rather than the triggering request.
type AdminHandler struct {
	recompute matchRecomputer
	params    pipeline.PrecomputeParams
	runCtx    context.Context
	logger    *log.Logger

	running atomic.Bool
}

func NewAdminHandler(runCtx context.Context, recompute matchRecomputer, params pipeline.PrecomputeParams, logger *log.Logger) *AdminHandler {
	if runCtx == nil {
		runCtx = context.Background()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &AdminHandler{recompute: recompute, params: params, runCtx: runCtx, logger: logger}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/matches/recompute", h.Recompute)
}

func (h *AdminHandler) Recompute(c fiber.Ctx) error {
	if h.recompute == nil {
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Match precompute unavailable", nil, nil)
	}
	if !h.running.CompareAndSwap(false, true) {
		return middleware.NewAppError(fiber.StatusConflict, "Match precompute already running", nil, pipeline.ErrAlreadyRunning)
	}

	go func() {
		defer h.running.Store(false)

		sum, err := h.recompute.Run(h.runCtx, h.params)
		switch {
		case errors.Is(err, pipeline.ErrAlreadyRunning):
			h.logger.Printf("admin=recompute status=skipped reason=locked")
		case err != nil:
			h.logger.Printf("admin=recompute status=error err=%v", err)
		default:
			h.logger.Printf("admin=recompute status=ok users=%d jobs=%d matched=%d failed=%d duration=%s",
				sum.Users, sum.Jobs, sum.Matched, sum.Failed, sum.Duration)
		}
	}()

	return response.Success(c, fiber.StatusAccepted, "accepted", dto.RecomputeResponse{Started: true})
}
