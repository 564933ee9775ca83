package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/matching"
	"job-portal/internal/domain/user"
	"job-portal/internal/policy"
	"job-portal/internal/repository"

	"github.com/google/uuid"
)

type SubmitApplicationInput struct {
	JobID       uuid.UUID
	CoverLetter string
}

// ApplicationNotifier is told about status changes after they are persisted.
type ApplicationNotifier interface {
	ApplicationStatusChanged(ctx context.Context, a application.Application, j job.Job)
}

type ApplicationUsecase interface {
	Submit(ctx context.Context, r policy.Requester, in SubmitApplicationInput) (application.Application, error)
	ListForApplicant(ctx context.Context, r policy.Requester) ([]application.Application, error)
	ListForJob(ctx context.Context, r policy.Requester, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, r policy.Requester, applicationID uuid.UUID, status application.Status) (application.Application, error)
}

type Applications struct {
	apps        repository.ApplicationRepository
	jobs        repository.JobRepository
	users       user.Repository
	transitions policy.TransitionPolicy
	notifier    ApplicationNotifier
	logger      *log.Logger
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	users user.Repository,
	transitions policy.TransitionPolicy,
	notifier ApplicationNotifier,
	logger *log.Logger,
) *Applications {
	if transitions == nil {
		transitions = policy.Permissive{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Applications{
		apps:        apps,
		jobs:        jobs,
		users:       users,
		transitions: transitions,
		notifier:    notifier,
		logger:      logger,
	}
}

func (u *Applications) Submit(ctx context.Context, r policy.Requester, in SubmitApplicationInput) (application.Application, error) {
	if !policy.CanApply(r) {
		return application.Application{}, ErrRoleViolation
	}
	if r.ID == uuid.Nil {
		return application.Application{}, ErrUnauthorized
	}

	j, err := u.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	exists, err := u.apps.Exists(ctx, j.ID, r.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrConflict
	}

	applicant, err := u.users.GetByID(ctx, r.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	a := application.Application{
		JobID:       j.ID,
		UserID:      applicant.ID,
		Status:      application.StatusPending,
		CoverLetter: strings.TrimSpace(in.CoverLetter),
		MatchScore:  frozenScore(applicant.Skills, j.Skills),
	}

	// The unique key on (job_id, user_id) decides concurrent submissions that
	// both passed the Exists check above.
	saved, err := u.apps.Save(ctx, a)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicate):
			return application.Application{}, ErrConflict
		case errors.Is(err, job.ErrNotFound):
			return application.Application{}, ErrNotFound
		}
		u.logger.Printf("application=submit status=error job_id=%s user_id=%s err=%v", j.ID, r.ID, err)
		return application.Application{}, ErrInternal
	}
	saved.Job = &j

	score := "none"
	if saved.MatchScore != nil {
		score = saved.MatchScore.String()
	}
	u.logger.Printf("application=submit status=ok application_id=%s job_id=%s user_id=%s score=%s", saved.ID, j.ID, r.ID, score)
	return saved, nil
}

func (u *Applications) ListForApplicant(ctx context.Context, r policy.Requester) ([]application.Application, error) {
	if r.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	items, err := u.apps.FindByUser(ctx, r.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) ListForJob(ctx context.Context, r policy.Requester, jobID uuid.UUID) ([]application.Application, error) {
	j, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrInternal
	}
	if !policy.CanViewJobApplications(r, j) {
		return nil, ErrForbidden
	}

	items, err := u.apps.FindByJob(ctx, j.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Applications) UpdateStatus(ctx context.Context, r policy.Requester, applicationID uuid.UUID, raw application.Status) (application.Application, error) {
	status, err := application.ParseStatus(string(raw))
	if err != nil {
		return application.Application{}, ErrInvalidInput
	}

	a, err := u.apps.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	j, err := u.jobs.GetByID(ctx, a.JobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	if !policy.CanMutateApplicationStatus(r, a, j) {
		return application.Application{}, ErrForbidden
	}
	if !u.transitions.Allow(a.Status, status) {
		return application.Application{}, ErrConflict
	}

	updated, err := u.apps.UpdateStatus(ctx, a.ID, status)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Application{}, ErrNotFound
		}
		return application.Application{}, ErrInternal
	}
	updated.Job = &j

	u.logger.Printf("application=update_status status=ok application_id=%s from=%s to=%s by=%s", a.ID, a.Status, updated.Status, r.ID)
	if u.notifier != nil {
		u.notifier.ApplicationStatusChanged(ctx, updated, j)
	}
	return updated, nil
}

// frozenScore is computed once at submission and never refreshed.
func frozenScore(candidateRaw, jobRaw string) *matching.Score {
	candidate := matching.Normalize(candidateRaw)
	required := matching.Normalize(jobRaw)
	if candidate.Empty() || required.Empty() {
		return nil
	}
	s := matching.Calculate(candidate, required)
	return &s
}
