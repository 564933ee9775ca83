package application

import (
	"errors"
	"strings"
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/matching"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("application not found")
	ErrDuplicate     = errors.New("application already exists for job and user")
	ErrInvalidStatus = errors.New("invalid application status")
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus is strict: status changes are never silently defaulted.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	UserID      uuid.UUID
	Status      Status
	CoverLetter string
	MatchScore  *matching.Score
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by listing queries that join the job or applicant rows.
	Job               *job.Job
	ApplicantUsername string
	ApplicantFullName string
}
