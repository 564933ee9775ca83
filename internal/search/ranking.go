package search

import (
	"sort"
	"strings"
	"time"

	"job-portal/internal/domain/job"
)

type JobScore struct {
	Relevance   float64
	Freshness   float64
	DataQuality float64
	FinalScore  float64
}

func ComputeRelevance(j job.Job, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(j.Title)
	skills := strings.ToLower(j.Skills)
	desc := strings.ToLower(j.Description)

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if strings.Contains(title, v) {
			score += 3
		}
		if strings.Contains(skills, v) {
			score += 2
		}
		if strings.Contains(desc, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(j job.Job, now time.Time) float64 {
	if j.PostedAt.IsZero() {
		return 0
	}
	age := now.Sub(j.PostedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	}
	return 0
}

func ComputeDataQuality(j job.Job) float64 {
	score := 0.0
	if strings.TrimSpace(j.Company) != "" {
		score++
	}
	if strings.TrimSpace(j.Location) != "" {
		score++
	}
	if strings.TrimSpace(j.Skills) != "" {
		score++
	}
	if j.Salary != nil {
		score++
	}
	if len(strings.TrimSpace(j.Description)) > 100 {
		score++
	}
	return score
}

func ScoreJob(j job.Job, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(j, queryVariants)
	fresh := ComputeFreshness(j, now)
	qual := ComputeDataQuality(j)

	return JobScore{
		Relevance:   rel,
		Freshness:   fresh,
		DataQuality: qual,
		FinalScore:  (rel * 2.0) + (fresh * 1.5) + (qual * 0.5),
	}
}

// RankJobs orders jobs by relevance to the query. Equal scores keep their input order.
func RankJobs(jobs []job.Job, queryVariants []string, now time.Time) []job.Job {
	if len(jobs) == 0 || len(queryVariants) == 0 {
		return jobs
	}

	scores := make([]float64, len(jobs))
	idx := make([]int, len(jobs))
	for i := range jobs {
		scores[i] = ScoreJob(jobs[i], queryVariants, now).FinalScore
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	out := make([]job.Job, 0, len(jobs))
	for _, i := range idx {
		out = append(out, jobs[i])
	}
	return out
}
