package handler

import (
	"job-portal/internal/delivery/http/dto"
	"job-portal/internal/pkg/response"
	"job-portal/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := bindBody(c, &req, false); err != nil {
		return err
	}

	created, err := h.uc.Create(c.Context(), r, usecase.CreateJobInput{
		Title:           req.Title,
		Description:     req.Description,
		Skills:          req.Skills,
		Company:         req.Company,
		Location:        req.Location,
		Salary:          req.Salary,
		EmploymentType:  req.EmploymentType,
		ExperienceLevel: req.ExperienceLevel,
	})
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}

	return response.Created(c, response.MessageCreated, dto.CreateJobResponse{
		Job:                      dto.NewJobResponse(created.Job),
		CompanyDefaulted:         created.CompanyDefaulted,
		EmploymentTypeDefaulted:  created.EmploymentTypeDefaulted,
		ExperienceLevelDefaulted: created.ExperienceLevelDefaulted,
	})
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(j))
}

func (h *JobHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), viewerID(c))
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, listingResponses(items))
}

func (h *JobHandler) Search(c fiber.Ctx) error {
	items, err := h.uc.Search(c.Context(), viewerID(c), c.Query("keyword"))
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, listingResponses(items))
}

func (h *JobHandler) Matching(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}

	items, err := h.uc.Matching(c.Context(), r)
	if err != nil {
		return mapUsecaseError(err, "User not found")
	}

	out := make([]dto.MatchedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.MatchedJobResponse{
			JobResponse: dto.NewJobResponse(it.Job),
			MatchScore:  it.Score,
			Applied:     it.Applied,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *JobHandler) Mine(c fiber.Ctx) error {
	r, err := requester(c)
	if err != nil {
		return err
	}

	jobs, err := h.uc.Mine(c.Context(), r)
	if err != nil {
		return mapUsecaseError(err, "Job not found")
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.NewJobResponse(j))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func listingResponses(items []usecase.JobListing) []dto.JobListItemResponse {
	out := make([]dto.JobListItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.JobListItemResponse{JobResponse: dto.NewJobResponse(it.Job), Applied: it.Applied})
	}
	return out
}
