package match

import (
	"time"

	"job-portal/internal/domain/matching"

	"github.com/google/uuid"
)

// JobMatch is a precomputed ranking row. Rank starts at 1.
type JobMatch struct {
	UserID    uuid.UUID
	JobID     uuid.UUID
	Score     matching.Score
	Rank      int
	MatchedAt time.Time
}

// FromRanked turns an ordered ranking into rows ready to persist.
func FromRanked(userID uuid.UUID, ranked []matching.RankedJob, at time.Time) []JobMatch {
	out := make([]JobMatch, 0, len(ranked))
	for i, r := range ranked {
		out = append(out, JobMatch{
			UserID:    userID,
			JobID:     r.Job.ID,
			Score:     r.Score,
			Rank:      i + 1,
			MatchedAt: at,
		})
	}
	return out
}
