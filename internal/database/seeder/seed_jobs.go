package seeder

import (
	"context"
	"errors"
	"fmt"

	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

// DemoJobsSeeder posts a handful of jobs as the demo recruiter. It must run
// after DemoUsersSeeder and skips jobs the recruiter already posted by title.
type DemoJobsSeeder struct{}

func (DemoJobsSeeder) Name() string { return "demo_jobs" }

func (DemoJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := requireColumns(ctx, db, "jobs",
		"id", "title", "description", "skills", "company", "location",
		"employment_type", "experience_level", "posted_by", "posted_at",
	); err != nil {
		return err
	}

	var recruiterID uuid.UUID
	if err := db.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, DemoRecruiterUsername).Scan(&recruiterID); err != nil {
		if dbpostgres.IsNoRows(err) {
			return errors.New("demo recruiter missing")
		}
		return err
	}

	items := []struct {
		Title           string
		Description     string
		Skills          string
		Location        string
		EmploymentType  job.EmploymentType
		ExperienceLevel job.ExperienceLevel
	}{
		{
			Title:           "Backend Engineer (Go)",
			Description:     "Build and maintain Go services, REST APIs and PostgreSQL-backed systems.",
			Skills:          "Go, PostgreSQL, Redis, Docker",
			Location:        "Jakarta, ID",
			EmploymentType:  job.EmploymentFullTime,
			ExperienceLevel: job.ExperienceMid,
		},
		{
			Title:           "Fullstack Engineer (React + Go)",
			Description:     "Develop web apps with React and TypeScript on top of Go backend services.",
			Skills:          "React, TypeScript, Go",
			Location:        "Bandung, ID",
			EmploymentType:  job.EmploymentFullTime,
			ExperienceLevel: job.ExperienceSenior,
		},
		{
			Title:           "DevOps Engineer",
			Description:     "Operate CI/CD, Docker, Kubernetes and cloud infrastructure for production workloads.",
			Skills:          "Docker, Kubernetes, AWS, Terraform",
			Location:        "Remote",
			EmploymentType:  job.EmploymentContract,
			ExperienceLevel: job.ExperienceMid,
		},
		{
			Title:           "Data Engineering Intern",
			Description:     "Help build data pipelines and tune PostgreSQL for analytics.",
			Skills:          "Python, SQL, PostgreSQL",
			Location:        "Surabaya, ID",
			EmploymentType:  job.EmploymentInternship,
			ExperienceLevel: job.ExperienceEntry,
		},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO jobs (title, description, skills, company, location, employment_type, experience_level, posted_by)
				 SELECT $1, $2, $3, u.company, $4, $5, $6, u.id
				 FROM users u
				 WHERE u.id = $7
				   AND NOT EXISTS (SELECT 1 FROM jobs j WHERE j.posted_by = u.id AND j.title = $1)`,
				it.Title, it.Description, it.Skills, it.Location,
				string(it.EmploymentType), string(it.ExperienceLevel), recruiterID,
			)
			if err != nil {
				return fmt.Errorf("insert %q: %w", it.Title, err)
			}
		}
		return nil
	})
}
