package handler

import (
	"errors"

	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/domain/application"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/apply/:jobId", h.Apply)
	r.Get("/mine", h.Mine)
	r.Get("/job/:jobId", h.ForJob)
	r.Put("/:id/status", h.UpdateStatus)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := bindBody(c, &req, true); err != nil {
		return err
	}

	app, err := h.uc.Submit(c.Context(), r, usecase.SubmitApplicationInput{JobID: jobID, CoverLetter: req.CoverLetter})
	if err != nil {
		if errors.Is(err, usecase.ErrConflict) {
			return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
		}
		return mapUsecaseError(err, "Job not found")
	}
	return response.Created(c, response.MessageCreated, dto.NewApplicationResponse(app))
}

func (h *ApplicationHandler) Mine(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListForApplicant(c.Context(), r)
	if err != nil {
		return mapUsecaseError(err, "Application not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) ForJob(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "jobId")
	if err != nil {
		return err
	}

	items, err := h.uc.ListForJob(c.Context(), r, jobID)
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(items))
}

func (h *ApplicationHandler) UpdateStatus(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := bindBody(c, &req, false); err != nil {
		return err
	}

	status, err := application.ParseStatus(req.Status)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status", nil, err)
	}

	app, err := h.uc.UpdateStatus(c.Context(), r, id, status)
	if err != nil {
		if errors.Is(err, usecase.ErrConflict) {
			return middleware.NewAppError(fiber.StatusConflict, "Status transition not allowed", nil, err)
		}
		return mapUsecaseError(err, "Application not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(app))
}
