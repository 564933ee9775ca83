package repository

import (
	"context"
	"strings"
	"time"

	"job-portal/internal/database"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `id, username, email, password_hash, full_name, role, skills, company, position, education, experience, created_at, updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, full_name, role, skills, company, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, string(u.Role), u.Skills, u.Company, u.Position,
	)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, strings.TrimSpace(username))
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, strings.TrimSpace(username))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, strings.TrimSpace(email))
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateProfile only touches the fields that are set. Role is never updated here.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p user.ProfileUpdate) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			full_name = COALESCE($2, full_name),
			email = COALESCE($3, email),
			education = COALESCE($4, education),
			experience = COALESCE($5, experience),
			position = COALESCE($6, position),
			company = COALESCE($7, company),
			updated_at = $8
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, p.FullName, p.Email, p.Education, p.Experience, p.Position, p.Company, time.Now().UTC(),
	)
	u, err := scanUser(row)
	if err != nil {
		if dbpostgres.IsUniqueViolation(err) {
			return user.User{}, user.ErrDuplicate
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) UpdateSkills(ctx context.Context, id uuid.UUID, skills string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET skills = $2, updated_at = $3 WHERE id = $1 RETURNING `+userColumns,
		id, skills, time.Now().UTC(),
	)
	return scanUser(row)
}

func (r *PostgresUserRepository) ListIDsByRole(ctx context.Context, role user.Role, limit, offset int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT id FROM users WHERE role = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		string(role), limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, limit)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	var role string
	if err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &role,
		&u.Skills, &u.Company, &u.Position, &u.Education, &u.Experience,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if dbpostgres.IsNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	return u, nil
}
