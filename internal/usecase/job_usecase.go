package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/matching"
	"job-portal/internal/domain/user"
	"job-portal/internal/policy"
	"job-portal/internal/repository"
	"job-portal/internal/search"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type CreateJobInput struct {
	Title           string
	Description     string
	Skills          string
	Company         string
	Location        string
	Salary          *float64
	EmploymentType  string
	ExperienceLevel string
}

type CreatedJob struct {
	Job                      job.Job
	CompanyDefaulted         bool
	EmploymentTypeDefaulted  bool
	ExperienceLevelDefaulted bool
}

type JobListing struct {
	Job     job.Job
	Applied bool
}

type MatchedJob struct {
	Job     job.Job
	Score   matching.Score
	Applied bool
}

type JobNotifier interface {
	JobPosted(ctx context.Context, j job.Job)
}

type JobUsecase interface {
	Create(ctx context.Context, r policy.Requester, in CreateJobInput) (CreatedJob, error)
	Get(ctx context.Context, id uuid.UUID) (job.Job, error)
	List(ctx context.Context, viewer uuid.UUID) ([]JobListing, error)
	Search(ctx context.Context, viewer uuid.UUID, keyword string) ([]JobListing, error)
	Matching(ctx context.Context, r policy.Requester) ([]MatchedJob, error)
	Mine(ctx context.Context, r policy.Requester) ([]job.Job, error)
}

type Jobs struct {
	jobs     repository.JobRepository
	apps     repository.ApplicationRepository
	users    user.Repository
	cache    MatchingCache
	cacheTTL time.Duration
	notifier JobNotifier
	logger   *log.Logger

	group singleflight.Group
	// bumped on every catalog change; a ranking computed under an older
	// value must not stay cached
	generation atomic.Uint64
	now        func() time.Time
}

func NewJobUsecase(
	jobs repository.JobRepository,
	apps repository.ApplicationRepository,
	users user.Repository,
	cache MatchingCache,
	cacheTTL time.Duration,
	notifier JobNotifier,
	logger *log.Logger,
) *Jobs {
	if logger == nil {
		logger = log.Default()
	}
	return &Jobs{
		jobs:     jobs,
		apps:     apps,
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Jobs) Create(ctx context.Context, r policy.Requester, in CreateJobInput) (CreatedJob, error) {
	if !policy.CanCreateJob(r) {
		return CreatedJob{}, ErrRoleViolation
	}

	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if title == "" || desc == "" {
		return CreatedJob{}, ErrInvalidInput
	}
	if in.Salary != nil && *in.Salary < 0 {
		return CreatedJob{}, ErrInvalidInput
	}

	poster, err := u.users.GetByID(ctx, r.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return CreatedJob{}, ErrUnauthorized
		}
		return CreatedJob{}, ErrInternal
	}

	out := CreatedJob{}
	company := strings.TrimSpace(in.Company)
	if company == "" {
		company = poster.Company
		out.CompanyDefaulted = true
	}
	employment, empDefaulted := job.ParseEmploymentType(in.EmploymentType)
	level, lvlDefaulted := job.ParseExperienceLevel(in.ExperienceLevel)
	out.EmploymentTypeDefaulted = empDefaulted
	out.ExperienceLevelDefaulted = lvlDefaulted

	created, err := u.jobs.Create(ctx, job.Job{
		Title:           title,
		Description:     desc,
		Skills:          strings.TrimSpace(in.Skills),
		Company:         company,
		Location:        strings.TrimSpace(in.Location),
		Salary:          in.Salary,
		EmploymentType:  employment,
		ExperienceLevel: level,
		PostedBy:        poster.ID,
		PostedAt:        u.now().UTC(),
	})
	if err != nil {
		u.logger.Printf("job=create status=error poster=%s err=%v", poster.ID, err)
		return CreatedJob{}, ErrInternal
	}
	out.Job = created

	// A new posting can change anyone's ranking.
	u.generation.Add(1)
	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, MatchingCachePattern); err != nil {
			u.logger.Printf("cache=matching op=invalidate status=error err=%v", err)
		}
	}
	u.logger.Printf("job=create status=ok job_id=%s poster=%s employment_defaulted=%t level_defaulted=%t", created.ID, poster.ID, empDefaulted, lvlDefaulted)
	if u.notifier != nil {
		u.notifier.JobPosted(ctx, created)
	}
	return out, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (job.Job, error) {
	j, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) List(ctx context.Context, viewer uuid.UUID) ([]JobListing, error) {
	jobs, err := u.jobs.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return u.annotate(ctx, viewer, jobs)
}

func (u *Jobs) Search(ctx context.Context, viewer uuid.UUID, keyword string) ([]JobListing, error) {
	q := search.ProcessQuery(keyword)
	if q.Keyword == "" {
		return u.List(ctx, viewer)
	}

	jobs, err := u.jobs.Search(ctx, []string{q.Keyword})
	if err != nil {
		return nil, ErrInternal
	}
	jobs = search.RankJobs(jobs, q.Variants, u.now().UTC())
	return u.annotate(ctx, viewer, jobs)
}

func (u *Jobs) Matching(ctx context.Context, r policy.Requester) ([]MatchedJob, error) {
	if r.Role != user.RoleJobSeeker {
		return nil, ErrRoleViolation
	}
	if r.ID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	ranked, err := u.rankedFor(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	applied, err := u.apps.AppliedJobIDs(ctx, r.ID)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]MatchedJob, 0, len(ranked))
	for _, rj := range ranked {
		_, ok := applied[rj.Job.ID]
		out = append(out, MatchedJob{Job: rj.Job, Score: rj.Score, Applied: ok})
	}
	return out, nil
}

func (u *Jobs) Mine(ctx context.Context, r policy.Requester) ([]job.Job, error) {
	if !policy.CanCreateJob(r) {
		return nil, ErrRoleViolation
	}
	jobs, err := u.jobs.FindByPostedBy(ctx, r.ID)
	if err != nil {
		return nil, ErrInternal
	}
	return jobs, nil
}

// rankedFor serves the user's ranking from cache, collapsing concurrent misses
// for the same user into one computation.
func (u *Jobs) rankedFor(ctx context.Context, userID uuid.UUID) ([]matching.RankedJob, error) {
	key := MatchingCacheKey(userID)
	if u.cache != nil {
		var cached []matching.RankedJob
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logger.Printf("cache=matching op=get status=hit key=%s", key)
			return cached, nil
		}
		u.logger.Printf("cache=matching op=get status=miss key=%s", key)
	}

	v, err, _ := u.group.Do(key, func() (any, error) {
		gen := u.generation.Load()
		usr, err := u.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, ErrInternal
		}
		jobs, err := u.jobs.FindAll(ctx)
		if err != nil {
			return nil, ErrInternal
		}

		ranked := matching.RankForUser(usr, jobs)
		if u.cache != nil {
			if err := u.cache.SetJSON(ctx, key, ranked, u.cacheTTL); err != nil {
				u.logger.Printf("cache=matching op=set status=error key=%s err=%v", key, err)
			}
			// A job posted while we ranked may already have run its
			// invalidation; drop what we just wrote.
			if u.generation.Load() != gen {
				if err := u.cache.Delete(ctx, key); err != nil {
					u.logger.Printf("cache=matching op=drop_stale status=error key=%s err=%v", key, err)
				}
			}
		}
		return ranked, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]matching.RankedJob), nil
}

func (u *Jobs) annotate(ctx context.Context, viewer uuid.UUID, jobs []job.Job) ([]JobListing, error) {
	applied := map[uuid.UUID]struct{}{}
	if viewer != uuid.Nil {
		ids, err := u.apps.AppliedJobIDs(ctx, viewer)
		if err != nil {
			return nil, ErrInternal
		}
		applied = ids
	}

	out := make([]JobListing, 0, len(jobs))
	for _, j := range jobs {
		_, ok := applied[j.ID]
		out = append(out, JobListing{Job: j, Applied: ok})
	}
	return out, nil
}
