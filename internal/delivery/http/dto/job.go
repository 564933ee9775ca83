package dto

import (
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/matching"

	"github.com/google/uuid"
)

type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required"`
	Skills          string   `json:"skills" validate:"max=1000"`
	Company         string   `json:"company" validate:"max=100"`
	Location        string   `json:"location" validate:"max=100"`
	Salary          *float64 `json:"salary" validate:"omitempty,gte=0"`
	EmploymentType  string   `json:"employment_type"`
	ExperienceLevel string   `json:"experience_level"`
}

type EnumValue struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

type JobResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Skills          string    `json:"skills"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Salary          *float64  `json:"salary"`
	EmploymentType  EnumValue `json:"employment_type"`
	ExperienceLevel EnumValue `json:"experience_level"`
	PostedBy        uuid.UUID `json:"posted_by"`
	PostedByName    string    `json:"posted_by_name"`
	PostedAt        time.Time `json:"posted_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Skills:          j.Skills,
		Company:         j.Company,
		Location:        j.Location,
		Salary:          j.Salary,
		EmploymentType:  EnumValue{Code: string(j.EmploymentType), DisplayName: j.EmploymentType.DisplayName()},
		ExperienceLevel: EnumValue{Code: string(j.ExperienceLevel), DisplayName: j.ExperienceLevel.DisplayName()},
		PostedBy:        j.PostedBy,
		PostedByName:    j.PostedByName,
		PostedAt:        j.PostedAt,
	}
}

type JobListItemResponse struct {
	JobResponse
	Applied bool `json:"applied"`
}

type MatchedJobResponse struct {
	JobResponse
	MatchScore matching.Score `json:"match_score"`
	Applied    bool           `json:"applied"`
}

type CreateJobResponse struct {
	Job                      JobResponse `json:"job"`
	CompanyDefaulted         bool        `json:"company_defaulted"`
	EmploymentTypeDefaulted  bool        `json:"employment_type_defaulted"`
	ExperienceLevelDefaulted bool        `json:"experience_level_defaulted"`
}
