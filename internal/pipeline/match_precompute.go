package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/match"
	"job-portal/internal/domain/matching"
	"job-portal/internal/domain/user"
	"job-portal/internal/repository"
	"job-portal/internal/usecase"

	"github.com/google/uuid"
)

var ErrAlreadyRunning = errors.New("match precompute already running")

const (
	RecomputeLockKey = "matches:recompute:lock"
	lockTTL          = 10 * time.Minute
	userPageSize     = 500
)

// PrecomputeCache is the cache surface the precompute needs: the lock and
// warming each user's ranking.
type PrecomputeCache interface {
	Available() bool
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	DeleteIfValue(ctx context.Context, key string, value string) (bool, error)
}

type PrecomputeParams struct {
	Workers       int
	RatePerSecond int
	CacheTTL      time.Duration
}

type PrecomputeSummary struct {
	Users    int
	Jobs     int
	Matched  int
	Failed   int
	Duration time.Duration
}

type MatchPrecompute struct {
	users   user.Repository
	jobs    repository.JobRepository
	matches repository.JobMatchRepository
	cache   PrecomputeCache
	log     *log.Logger

	now func() time.Time
}

func NewMatchPrecompute(
	users user.Repository,
	jobs repository.JobRepository,
	matches repository.JobMatchRepository,
	cache PrecomputeCache,
	logger *log.Logger,
) *MatchPrecompute {
	if logger == nil {
		logger = log.Default()
	}
	return &MatchPrecompute{users: users, jobs: jobs, matches: matches, cache: cache, log: logger, now: time.Now}
}

// Run ranks every job seeker against the whole catalogue, replaces their
// stored matches and warms their matching cache entry.
func (p *MatchPrecompute) Run(ctx context.Context, params PrecomputeParams) (PrecomputeSummary, error) {
	start := time.Now()
	summary := PrecomputeSummary{}

	release, err := p.acquireLock(ctx)
	if err != nil {
		return summary, err
	}
	defer release()

	p.log.Printf("pipeline=match_precompute status=started")
	defer func() {
		p.log.Printf("pipeline=match_precompute status=finished duration=%s", time.Since(start))
	}()

	jobs, err := p.jobs.FindAll(ctx)
	if err != nil {
		return summary, err
	}
	summary.Jobs = len(jobs)

	userIDs := make([]uuid.UUID, 0)
	for off := 0; ; {
		ids, err := p.users.ListIDsByRole(ctx, user.RoleJobSeeker, userPageSize, off)
		if err != nil {
			return summary, err
		}
		if len(ids) == 0 {
			break
		}
		userIDs = append(userIDs, ids...)
		off += len(ids)
		if len(ids) < userPageSize {
			break
		}
	}
	summary.Users = len(userIDs)
	if len(userIDs) == 0 {
		summary.Duration = time.Since(start)
		return summary, nil
	}

	workers := params.Workers
	if workers <= 0 {
		workers = 8
	}
	p.log.Printf("pipeline=match_precompute status=info users=%d jobs=%d workers=%d rate=%d", len(userIDs), len(jobs), workers, params.RatePerSecond)

	pool := NewWorkerPool(workers, workers*2)
	pool.SetRateLimit(params.RatePerSecond)
	results := pool.Run(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r := range results {
			if r.Err != nil {
				summary.Failed++
				continue
			}
			summary.Matched += r.Count
		}
	}()

	var submitErr error
	for _, uid := range userIDs {
		uid := uid
		if err := pool.Submit(ctx, func(ctx context.Context) Result {
			return p.rankUser(ctx, uid, jobs, params.CacheTTL)
		}); err != nil {
			submitErr = err
			break
		}
	}
	pool.Close()
	wg.Wait()

	summary.Duration = time.Since(start)
	p.log.Printf("pipeline=match_precompute summary users=%d jobs=%d matched=%d failed=%d", summary.Users, summary.Jobs, summary.Matched, summary.Failed)
	if submitErr != nil {
		return summary, submitErr
	}
	return summary, ctx.Err()
}

func (p *MatchPrecompute) rankUser(ctx context.Context, userID uuid.UUID, jobs []job.Job, ttl time.Duration) Result {
	u, err := p.users.GetByID(ctx, userID)
	if err != nil {
		p.log.Printf("pipeline=match_precompute status=error user_id=%s err=%v", userID, err)
		return Result{Err: err}
	}

	ranked := matching.RankForUser(u, jobs)
	rows := match.FromRanked(userID, ranked, p.now().UTC())
	if err := p.matches.ReplaceForUser(ctx, userID, rows); err != nil {
		p.log.Printf("pipeline=match_precompute status=error user_id=%s err=%v", userID, err)
		return Result{Err: err}
	}

	if p.cache != nil {
		if err := p.cache.SetJSON(ctx, usecase.MatchingCacheKey(userID), ranked, ttl); err != nil {
			p.log.Printf("cache=matching op=warm status=error user_id=%s err=%v", userID, err)
		}
	}
	return Result{Count: len(rows)}
}

// acquireLock takes the Redis lock when Redis is up. Without Redis the run
// proceeds unguarded. The lock holds a per-run token so a run that outlived
// lockTTL cannot release a lock another run has since taken.
func (p *MatchPrecompute) acquireLock(ctx context.Context) (func(), error) {
	noop := func() {}
	if p.cache == nil || !p.cache.Available() {
		return noop, nil
	}
	token := uuid.NewString()
	ok, err := p.cache.SetIfNotExists(ctx, RecomputeLockKey, token, lockTTL)
	if err != nil {
		p.log.Printf("pipeline=match_precompute lock=error err=%v", err)
		return noop, nil
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return func() {
		released, err := p.cache.DeleteIfValue(context.Background(), RecomputeLockKey, token)
		switch {
		case err != nil:
			p.log.Printf("pipeline=match_precompute lock=release_error err=%v", err)
		case !released:
			p.log.Printf("pipeline=match_precompute lock=expired ttl=%s", lockTTL)
		}
	}, nil
}
