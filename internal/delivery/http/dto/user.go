package dto

import (
	"time"

	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Skills     string    `json:"skills"`
	Company    string    `json:"company"`
	Position   string    `json:"position"`
	Education  string    `json:"education"`
	Experience *int      `json:"experience"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		Skills:     u.Skills,
		Company:    u.Company,
		Position:   u.Position,
		Education:  u.Education,
		Experience: u.Experience,
		CreatedAt:  u.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	FullName   *string `json:"full_name" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Education  *string `json:"education" validate:"omitempty,max=200"`
	Experience *int    `json:"experience" validate:"omitempty,min=0,max=80"`
	Position   *string `json:"position" validate:"omitempty,max=100"`
	Company    *string `json:"company" validate:"omitempty,max=100"`
}

type UpdateSkillsRequest struct {
	Skills string `json:"skills" validate:"max=1000"`
}
