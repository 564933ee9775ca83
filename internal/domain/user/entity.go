package user

import (
	"time"

	"job-portal/internal/domain"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRecruiter Role = "RECRUITER"
	RoleJobSeeker Role = "JOBSEEKER"
)

var roles = map[string]Role{
	"admin":     RoleAdmin,
	"recruiter": RoleRecruiter,
	"jobseeker": RoleJobSeeker,
}

// ParseRole falls back to job-seeker for blank or unknown input.
func ParseRole(raw string) (Role, bool) {
	return domain.ParseOrDefault(raw, RoleJobSeeker, roles)
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleJobSeeker:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Skills       string
	Company      string
	Position     string
	Education    string
	Experience   *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProfileUpdate struct {
	FullName   *string
	Email      *string
	Education  *string
	Experience *int
	Position   *string
	Company    *string
}
