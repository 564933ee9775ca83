package policy

import (
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

// Requester is the already-authenticated identity acting on a request.
type Requester struct {
	ID   uuid.UUID
	Role user.Role
}

func (r Requester) IsAdmin() bool {
	return r.Role == user.RoleAdmin
}

func CanViewJobApplications(r Requester, j job.Job) bool {
	if r.IsAdmin() {
		return true
	}
	return r.ID != uuid.Nil && r.ID == j.PostedBy
}

// CanMutateApplicationStatus requires j to be the job the application belongs to.
func CanMutateApplicationStatus(r Requester, a application.Application, j job.Job) bool {
	if a.JobID != j.ID {
		return false
	}
	return CanViewJobApplications(r, j)
}

func CanCreateJob(r Requester) bool {
	return r.Role == user.RoleRecruiter || r.Role == user.RoleAdmin
}

func CanApply(r Requester) bool {
	return r.Role == user.RoleJobSeeker
}
