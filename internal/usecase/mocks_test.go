package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type memUsers struct {
	mu   sync.Mutex
	byID map[uuid.UUID]user.User
}

func newMemUsers(users ...user.User) *memUsers {
	m := &memUsers{byID: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return user.ErrDuplicate
		}
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *memUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id uuid.UUID, p user.ProfileUpdate) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if p.Email != nil {
		for otherID, other := range m.byID {
			if otherID != id && other.Email == *p.Email {
				return user.User{}, user.ErrDuplicate
			}
		}
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Education != nil {
		u.Education = *p.Education
	}
	if p.Experience != nil {
		u.Experience = p.Experience
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	m.byID[id] = u
	return u, nil
}

func (m *memUsers) UpdateSkills(_ context.Context, id uuid.UUID, skills string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	u.Skills = skills
	m.byID[id] = u
	return u, nil
}

func (m *memUsers) ListIDsByRole(_ context.Context, role user.Role, limit, offset int) ([]uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []uuid.UUID{}
	for id, u := range m.byID {
		if u.Role == role {
			out = append(out, id)
		}
	}
	if offset >= len(out) {
		return []uuid.UUID{}, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memJobs struct {
	mu        sync.Mutex
	items     []job.Job
	findCalls int
}

func newMemJobs(jobs ...job.Job) *memJobs {
	return &memJobs{items: append([]job.Job(nil), jobs...)}
}

func (m *memJobs) Create(_ context.Context, j job.Job) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	m.items = append(m.items, j)
	return j, nil
}

func (m *memJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range m.items {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, job.ErrNotFound
}

func (m *memJobs) FindAll(context.Context) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	return append([]job.Job(nil), m.items...), nil
}

func (m *memJobs) FindByPostedBy(_ context.Context, userID uuid.UUID) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []job.Job{}
	for _, j := range m.items {
		if j.PostedBy == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *memJobs) Search(_ context.Context, variants []string) ([]job.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []job.Job{}
	for _, j := range m.items {
		hay := strings.ToLower(j.Title + "\n" + j.Description + "\n" + j.Skills)
		for _, v := range variants {
			if strings.Contains(hay, v) {
				out = append(out, j)
				break
			}
		}
	}
	return out, nil
}

func (m *memJobs) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), nil
}

func (m *memJobs) FindAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findCalls
}

// memApps enforces one application per (job, user) the way the unique key does.
type memApps struct {
	mu    sync.Mutex
	items map[uuid.UUID]application.Application
	jobs  *memJobs
}

func newMemApps(jobs *memJobs) *memApps {
	return &memApps{items: map[uuid.UUID]application.Application{}, jobs: jobs}
}

func (m *memApps) Exists(_ context.Context, jobID, userID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.JobID == jobID && a.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memApps) Save(_ context.Context, a application.Application) (application.Application, error) {
	// Widen the window between Exists and Save for the concurrency test.
	time.Sleep(time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if existing.JobID == a.JobID && existing.UserID == a.UserID {
			return application.Application{}, application.ErrDuplicate
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()
	a.UpdatedAt = a.CreatedAt
	m.items[a.ID] = a
	return a, nil
}

func (m *memApps) GetByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	return a, nil
}

func (m *memApps) FindByUser(ctx context.Context, userID uuid.UUID) ([]application.Application, error) {
	m.mu.Lock()
	out := []application.Application{}
	for _, a := range m.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	m.mu.Unlock()

	for i := range out {
		if j, err := m.jobs.GetByID(ctx, out[i].JobID); err == nil {
			out[i].Job = &j
		}
	}
	return out, nil
}

func (m *memApps) FindByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []application.Application{}
	for _, a := range m.items {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memApps) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	m.items[id] = a
	return a, nil
}

func (m *memApps) AppliedJobIDs(_ context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[uuid.UUID]struct{}{}
	for _, a := range m.items {
		if a.UserID == userID {
			out[a.JobID] = struct{}{}
		}
	}
	return out, nil
}

func (m *memApps) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items), nil
}

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	b, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	c.deletes = append(c.deletes, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	c.deletes = append(c.deletes, pattern)
	return nil
}

func (c *memCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

type recordingNotifier struct {
	mu       sync.Mutex
	statuses []application.Status
	posted   []uuid.UUID
}

func (n *recordingNotifier) ApplicationStatusChanged(_ context.Context, a application.Application, _ job.Job) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, a.Status)
}

func (n *recordingNotifier) JobPosted(_ context.Context, j job.Job) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.posted = append(n.posted, j.ID)
}
