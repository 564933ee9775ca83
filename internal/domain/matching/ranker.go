package matching

import (
	"sort"

	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"
)

type RankedJob struct {
	Job   job.Job
	Score Score
}

// RankForUser scores every job against the user's skills and returns the
// positive matches, best first. Equal scores are ordered by job id.
func RankForUser(u user.User, jobs []job.Job) []RankedJob {
	candidate := Normalize(u.Skills)
	if candidate.Empty() {
		return []RankedJob{}
	}

	out := make([]RankedJob, 0, len(jobs))
	for _, j := range jobs {
		required := Normalize(j.Skills)
		if required.Empty() {
			continue
		}
		score := Calculate(candidate, required)
		if score <= 0 {
			continue
		}
		out = append(out, RankedJob{Job: j, Score: score})
	}

	sort.SliceStable(out, func(i, k int) bool {
		if out[i].Score != out[k].Score {
			return out[i].Score > out[k].Score
		}
		return out[i].Job.ID.String() < out[k].Job.ID.String()
	})

	return out
}
