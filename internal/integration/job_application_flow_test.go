package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"job-portal/internal/app"
	"job-portal/internal/config"
	"job-portal/internal/database"
	"job-portal/internal/database/migration"
	dbpostgres "job-portal/internal/database/postgres"
	"job-portal/internal/domain/matching"
	"job-portal/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	User struct {
		ID uuid.UUID `json:"id"`
	} `json:"user"`
	RoleDefaulted bool   `json:"role_defaulted"`
	AccessToken   string `json:"access_token"`
}

type jobItem struct {
	ID         uuid.UUID `json:"id"`
	MatchScore float64   `json:"match_score"`
	Applied    bool      `json:"applied"`
}

type applicationItem struct {
	ID         uuid.UUID `json:"id"`
	Status     string    `json:"status"`
	MatchScore *float64  `json:"match_score"`
}

func TestIntegration_PostApplyReview(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	cfg := testConfig()
	c := app.Assemble(cfg, log.New(io.Discard, "", 0), db)
	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	go c.Hub.Run(runCtx.Done())
	a := app.New(runCtx, c)

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	recruiter := register(t, a.Fiber, map[string]string{
		"username":  "rec_" + suffix,
		"email":     "rec_" + suffix + "@example.com",
		"password":  "password123",
		"full_name": "Integration Recruiter",
		"role":      "RECRUITER",
		"company":   "Integration Co",
	})
	seeker := register(t, a.Fiber, map[string]string{
		"username":  "seek_" + suffix,
		"email":     "seek_" + suffix + "@example.com",
		"password":  "password123",
		"full_name": "Integration Seeker",
		"role":      "astronaut",
		"skills":    "Go, PostgreSQL, Docker",
	})
	defer func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE id = $1 OR id = $2`, recruiter.User.ID, seeker.User.ID)
	}()
	if !seeker.RoleDefaulted {
		t.Fatalf("register: expected role_defaulted=true for unknown role")
	}

	status, body := call(t, a.Fiber, "POST", "/api/v1/jobs", recruiter.AccessToken, map[string]any{
		"title":       "Integration Backend Engineer " + suffix,
		"description": "Build Go services",
		"skills":      "Go, PostgreSQL, Redis",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create job: expected 201, got %d (message=%s)", status, body.Message)
	}
	var created struct {
		Job                     jobItem `json:"job"`
		CompanyDefaulted        bool    `json:"company_defaulted"`
		EmploymentTypeDefaulted bool    `json:"employment_type_defaulted"`
	}
	decode(t, body.Data, &created)
	if !created.CompanyDefaulted || !created.EmploymentTypeDefaulted {
		t.Fatalf("create job: expected company and employment type defaulted, got %+v", created)
	}
	jobID := created.Job.ID

	status, _ = call(t, a.Fiber, "POST", "/api/v1/jobs", seeker.AccessToken, map[string]any{
		"title": "nope", "description": "nope",
	})
	if status != fiber.StatusForbidden {
		t.Fatalf("seeker create job: expected 403, got %d", status)
	}

	status, body = call(t, a.Fiber, "GET", "/api/v1/jobs/matching", seeker.AccessToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("matching: expected 200, got %d", status)
	}
	var matched []jobItem
	decode(t, body.Data, &matched)
	m, ok := findJob(matched, jobID)
	if !ok {
		t.Fatalf("matching: expected posted job in results")
	}
	if m.MatchScore != 66.67 || m.Applied {
		t.Fatalf("matching: expected score 66.67 and not applied, got %+v", m)
	}

	status, body = call(t, a.Fiber, "POST", "/api/v1/applications/apply/"+jobID.String(), seeker.AccessToken, map[string]any{
		"cover_letter": "hello",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("apply: expected 201, got %d (message=%s)", status, body.Message)
	}
	var applied applicationItem
	decode(t, body.Data, &applied)
	if applied.Status != "PENDING" || applied.MatchScore == nil || *applied.MatchScore != 66.67 {
		t.Fatalf("apply: unexpected application %+v", applied)
	}

	if status, _ = call(t, a.Fiber, "POST", "/api/v1/applications/apply/"+jobID.String(), seeker.AccessToken, nil); status != fiber.StatusConflict {
		t.Fatalf("duplicate apply: expected 409, got %d", status)
	}
	if status, _ = call(t, a.Fiber, "POST", "/api/v1/applications/apply/"+jobID.String(), recruiter.AccessToken, nil); status != fiber.StatusForbidden {
		t.Fatalf("recruiter apply: expected 403, got %d", status)
	}
	if status, _ = call(t, a.Fiber, "GET", "/api/v1/applications/job/"+jobID.String(), seeker.AccessToken, nil); status != fiber.StatusForbidden {
		t.Fatalf("seeker list job applications: expected 403, got %d", status)
	}

	status, body = call(t, a.Fiber, "GET", "/api/v1/applications/job/"+jobID.String(), recruiter.AccessToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("recruiter list job applications: expected 200, got %d", status)
	}
	var forJob []applicationItem
	decode(t, body.Data, &forJob)
	if len(forJob) != 1 || forJob[0].ID != applied.ID {
		t.Fatalf("recruiter list job applications: unexpected %+v", forJob)
	}

	status, body = call(t, a.Fiber, "PUT", "/api/v1/applications/"+applied.ID.String()+"/status", recruiter.AccessToken, map[string]any{
		"status": "accepted",
	})
	if status != fiber.StatusOK {
		t.Fatalf("update status: expected 200, got %d (message=%s)", status, body.Message)
	}
	var updated applicationItem
	decode(t, body.Data, &updated)
	if updated.Status != "ACCEPTED" || updated.MatchScore == nil || *updated.MatchScore != 66.67 {
		t.Fatalf("update status: unexpected %+v", updated)
	}

	status, body = call(t, a.Fiber, "GET", "/api/v1/jobs", seeker.AccessToken, nil)
	if status != fiber.StatusOK {
		t.Fatalf("list jobs: expected 200, got %d", status)
	}
	var listed []jobItem
	decode(t, body.Data, &listed)
	if l, ok := findJob(listed, jobID); !ok || !l.Applied {
		t.Fatalf("list jobs: expected posted job with applied=true")
	}

	sum, err := c.Precompute.Run(ctx, c.PrecomputeParams())
	if err != nil {
		t.Fatalf("precompute: %v", err)
	}
	if sum.Users == 0 || sum.Failed != 0 {
		t.Fatalf("precompute: unexpected summary %+v", sum)
	}
	stored, err := c.Matches.FindByUser(ctx, seeker.User.ID)
	if err != nil {
		t.Fatalf("find matches: %v", err)
	}
	found := false
	for i, m := range stored {
		if m.Rank != i+1 {
			t.Fatalf("find matches: expected contiguous ranks, got %d at %d", m.Rank, i)
		}
		if m.JobID == jobID {
			found = true
			if m.Score != matching.Score(6667) {
				t.Fatalf("find matches: expected 66.67, got %s", m.Score)
			}
		}
	}
	if !found {
		t.Fatalf("find matches: expected posted job in stored ranking")
	}
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{AppName: "JobPortal", Environment: "test", HTTPPort: "0"},
		JWT: config.JWTConfig{
			AccessSecret:     stringsOrDefault(os.Getenv("JOBPORTAL_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
			RefreshSecret:    stringsOrDefault(os.Getenv("JOBPORTAL_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
		// Port 1 refuses immediately, so the cache runs in bypass mode.
		Redis:    config.RedisConfig{Host: "127.0.0.1", Port: "1"},
		Matching: config.MatchingConfig{Workers: 2, CacheTTL: time.Minute},
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBPORTAL_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBPORTAL_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBPORTAL_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBPORTAL_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBPORTAL_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBPORTAL_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBPORTAL_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}, "job-portal-integration")
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Source: migrations.Files, Logger: log.New(io.Discard, "", 0)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func register(t *testing.T, app *fiber.App, body map[string]string) authData {
	t.Helper()

	status, sr := call(t, app, "POST", "/api/v1/auth/register", "", body)
	if status != fiber.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (message=%s)", body["username"], status, sr.Message)
	}
	var out authData
	decode(t, sr.Data, &out)
	if out.AccessToken == "" || out.User.ID == uuid.Nil {
		t.Fatalf("register %s: missing token or user id", body["username"])
	}
	return out
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, semanticResponse) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: request error: %v", method, path, err)
	}
	defer resp.Body.Close()

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode error: %v", method, path, err)
	}
	return resp.StatusCode, sr
}

func decode(t *testing.T, raw json.RawMessage, out any) {
	t.Helper()

	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func findJob(items []jobItem, id uuid.UUID) (jobItem, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return jobItem{}, false
}

func stringsOrDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
