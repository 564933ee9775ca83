package seeder

import (
	"context"
	"fmt"
	"strings"

	"job-portal/internal/config"
	"job-portal/internal/database"
	"job-portal/internal/domain/user"
	ucauth "job-portal/internal/usecase/auth"
)

const (
	DemoRecruiterUsername = "demo_recruiter"
	DemoSeekerUsername    = "demo_seeker"
	demoPassword          = "password123"
)

type seedUser struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     user.Role
	Skills   string
	Company  string
	Position string
}

// AdminSeeder creates the single admin account. ADMIN can't self-register,
// so this is the only way one exists.
type AdminSeeder struct {
	Admin config.AdminConfig
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	if strings.TrimSpace(s.Admin.Password) == "" {
		return nil
	}
	username := strings.TrimSpace(s.Admin.Username)
	if username == "" {
		username = "admin"
	}
	email := strings.TrimSpace(s.Admin.Email)
	if email == "" {
		email = username + "@jobportal.local"
	}
	return insertUsers(ctx, db, []seedUser{{
		Username: username,
		Email:    strings.ToLower(email),
		Password: s.Admin.Password,
		FullName: "Administrator",
		Role:     user.RoleAdmin,
	}})
}

type DemoUsersSeeder struct{}

func (DemoUsersSeeder) Name() string { return "demo_users" }

func (DemoUsersSeeder) Run(ctx context.Context, db database.DB) error {
	return insertUsers(ctx, db, []seedUser{
		{
			Username: DemoRecruiterUsername,
			Email:    "recruiter@jobportal.local",
			Password: demoPassword,
			FullName: "Demo Recruiter",
			Role:     user.RoleRecruiter,
			Company:  "Job Portal Labs",
			Position: "Talent Acquisition",
		},
		{
			Username: DemoSeekerUsername,
			Email:    "seeker@jobportal.local",
			Password: demoPassword,
			FullName: "Demo Seeker",
			Role:     user.RoleJobSeeker,
			Skills:   "Go, PostgreSQL, Docker, Redis",
			Position: "Backend Engineer",
		},
	})
}

func insertUsers(ctx context.Context, db database.DB, items []seedUser) error {
	if err := requireColumns(ctx, db, "users",
		"id", "username", "email", "password_hash", "full_name", "role", "skills", "company", "position",
	); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			hash, err := ucauth.HashPassword(it.Password)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", it.Username, err)
			}
			_, err = tx.Exec(
				ctx,
				`INSERT INTO users (username, email, password_hash, full_name, role, skills, company, position)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				 ON CONFLICT DO NOTHING`,
				it.Username, it.Email, hash, it.FullName, string(it.Role), it.Skills, it.Company, it.Position,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
