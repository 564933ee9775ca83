package repository

import (
	"context"
	"time"

	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/matching"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	Exists(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	// Save relies on the (job_id, user_id) unique key; a second insert for the
	// same pair returns application.ErrDuplicate.
	Save(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error)
	AppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	Count(ctx context.Context) (int, error)
}

const applicationColumns = `a.id, a.job_id, a.user_id, a.status, a.cover_letter, a.match_score::float8, a.created_at, a.updated_at`

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) Save(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = a.CreatedAt

	var score *float64
	if a.MatchScore != nil {
		p := a.MatchScore.Percent()
		score = &p
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, user_id, status, cover_letter, match_score, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.JobID, a.UserID, string(a.Status), a.CoverLetter, score, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		switch {
		case dbpostgres.IsUniqueViolation(err):
			return application.Application{}, application.ErrDuplicate
		case dbpostgres.IsForeignKeyViolation(err):
			return application.Application{}, job.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

// FindByUser returns the user's applications with their job attached, newest first.
func (r *PostgresApplicationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`,
			j.id, j.title, j.description, j.skills, j.company, j.location, j.salary,
			j.employment_type, j.experience_level, j.posted_by, COALESCE(p.full_name, ''), j.posted_at
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 LEFT JOIN users p ON p.id = j.posted_by
		 WHERE a.user_id = $1
		 ORDER BY a.created_at DESC, a.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var (
			a                 application.Application
			status            string
			pct               *float64
			j                 job.Job
			employment, level string
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &status, &a.CoverLetter, &pct, &a.CreatedAt, &a.UpdatedAt,
			&j.ID, &j.Title, &j.Description, &j.Skills, &j.Company, &j.Location, &j.Salary,
			&employment, &level, &j.PostedBy, &j.PostedByName, &j.PostedAt,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		a.MatchScore = scoreFromNullable(pct)
		j.EmploymentType = job.EmploymentType(employment)
		j.ExperienceLevel = job.ExperienceLevel(level)
		a.Job = &j
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByJob returns a job's applications with the applicant's names, best match first.
func (r *PostgresApplicationRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+`, u.username, u.full_name
		 FROM applications a
		 JOIN users u ON u.id = a.user_id
		 WHERE a.job_id = $1
		 ORDER BY a.match_score DESC NULLS LAST, a.created_at ASC, a.id ASC`,
		jobID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var (
			a      application.Application
			status string
			pct    *float64
		)
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &status, &a.CoverLetter, &pct, &a.CreatedAt, &a.UpdatedAt,
			&a.ApplicantUsername, &a.ApplicantFullName,
		); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		a.MatchScore = scoreFromNullable(pct)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE applications a SET status = $2, updated_at = $3
		 WHERE a.id = $1
		 RETURNING `+applicationColumns,
		id, string(status), time.Now().UTC(),
	)
	a, err := scanApplication(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) AppliedJobIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	out := make(map[uuid.UUID]struct{})
	if userID == uuid.Nil {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT job_id FROM applications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	var status string
	var pct *float64
	if err := row.Scan(&a.ID, &a.JobID, &a.UserID, &status, &a.CoverLetter, &pct, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return application.Application{}, err
	}
	a.Status = application.Status(status)
	a.MatchScore = scoreFromNullable(pct)
	return a, nil
}

func scoreFromNullable(pct *float64) *matching.Score {
	if pct == nil {
		return nil
	}
	s := matching.ScoreFromPercent(*pct)
	return &s
}
