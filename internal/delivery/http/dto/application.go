package dto

import (
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/matching"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" validate:"max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ApplicantResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
}

type ApplicationResponse struct {
	ID          uuid.UUID          `json:"id"`
	JobID       uuid.UUID          `json:"job_id"`
	UserID      uuid.UUID          `json:"user_id"`
	Status      string             `json:"status"`
	CoverLetter string             `json:"cover_letter"`
	MatchScore  *matching.Score    `json:"match_score"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Job         *JobResponse       `json:"job,omitempty"`
	Applicant   *ApplicantResponse `json:"applicant,omitempty"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	out := ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		UserID:      a.UserID,
		Status:      string(a.Status),
		CoverLetter: a.CoverLetter,
		MatchScore:  a.MatchScore,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Job != nil {
		j := NewJobResponse(*a.Job)
		out.Job = &j
	}
	if a.ApplicantUsername != "" {
		out.Applicant = &ApplicantResponse{ID: a.UserID, Username: a.ApplicantUsername, FullName: a.ApplicantFullName}
	}
	return out
}

func NewApplicationResponses(items []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(items))
	for _, a := range items {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
