package repository

import (
	"context"
	"strings"
	"time"

	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/domain/job"

	"github.com/google/uuid"
)

type JobRepository interface {
	Create(ctx context.Context, j job.Job) (job.Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (job.Job, error)
	FindAll(ctx context.Context) ([]job.Job, error)
	FindByPostedBy(ctx context.Context, userID uuid.UUID) ([]job.Job, error)
	// Search matches any of the keyword variants against title, description or skills.
	Search(ctx context.Context, variants []string) ([]job.Job, error)
	Count(ctx context.Context) (int, error)
}

const jobSelect = `SELECT j.id, j.title, j.description, j.skills, j.company, j.location, j.salary,
	j.employment_type, j.experience_level, j.posted_by, COALESCE(u.full_name, ''), j.posted_at
	FROM jobs j
	LEFT JOIN users u ON u.id = j.posted_by`

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO jobs (id, title, description, skills, company, location, salary, employment_type, experience_level, posted_by, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		j.ID, j.Title, j.Description, j.Skills, j.Company, j.Location, j.Salary,
		string(j.EmploymentType), string(j.ExperienceLevel), j.PostedBy, j.PostedAt,
	)
	if err != nil {
		return job.Job{}, err
	}
	return r.GetByID(ctx, j.ID)
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if dbpostgres.IsNoRows(err) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *PostgresJobRepository) FindAll(ctx context.Context) ([]job.Job, error) {
	return r.list(ctx, jobSelect+` ORDER BY j.posted_at DESC, j.id ASC`)
}

func (r *PostgresJobRepository) FindByPostedBy(ctx context.Context, userID uuid.UUID) ([]job.Job, error) {
	return r.list(ctx, jobSelect+` WHERE j.posted_by = $1 ORDER BY j.posted_at DESC, j.id ASC`, userID)
}

func (r *PostgresJobRepository) Search(ctx context.Context, variants []string) ([]job.Job, error) {
	patterns := make([]string, 0, len(variants))
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		patterns = append(patterns, "%"+escapeLike(v)+"%")
	}
	if len(patterns) == 0 {
		return r.FindAll(ctx)
	}

	return r.list(ctx,
		jobSelect+` WHERE lower(j.title) LIKE ANY($1)
			OR lower(j.description) LIKE ANY($1)
			OR lower(j.skills) LIKE ANY($1)
		 ORDER BY j.posted_at DESC, j.id ASC`,
		patterns,
	)
}

func (r *PostgresJobRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresJobRepository) list(ctx context.Context, query string, args ...any) ([]job.Job, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJob(row database.Row) (job.Job, error) {
	var j job.Job
	var employment, level string
	if err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Skills, &j.Company, &j.Location, &j.Salary,
		&employment, &level, &j.PostedBy, &j.PostedByName, &j.PostedAt,
	); err != nil {
		return job.Job{}, err
	}
	j.EmploymentType = job.EmploymentType(employment)
	j.ExperienceLevel = job.ExperienceLevel(level)
	return j, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
