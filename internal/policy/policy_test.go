package policy

import (
	"testing"

	"job-portal/internal/domain/application"
	"job-portal/internal/domain/job"
	"job-portal/internal/domain/user"

	"github.com/google/uuid"
)

func TestCanViewJobApplications(t *testing.T) {
	poster := uuid.New()
	j := job.Job{ID: uuid.New(), PostedBy: poster}

	if !CanViewJobApplications(Requester{ID: poster, Role: user.RoleRecruiter}, j) {
		t.Fatalf("poster should see applications")
	}
	if !CanViewJobApplications(Requester{ID: uuid.New(), Role: user.RoleAdmin}, j) {
		t.Fatalf("admin should see applications")
	}
	if CanViewJobApplications(Requester{ID: uuid.New(), Role: user.RoleRecruiter}, j) {
		t.Fatalf("other recruiter must not see applications")
	}
	if CanViewJobApplications(Requester{Role: user.RoleRecruiter}, job.Job{ID: uuid.New()}) {
		t.Fatalf("nil identity must not match an unowned job")
	}
}

func TestCanMutateApplicationStatus(t *testing.T) {
	poster := uuid.New()
	j := job.Job{ID: uuid.New(), PostedBy: poster}
	a := application.Application{ID: uuid.New(), JobID: j.ID}

	if !CanMutateApplicationStatus(Requester{ID: poster, Role: user.RoleRecruiter}, a, j) {
		t.Fatalf("poster should mutate status")
	}
	if CanMutateApplicationStatus(Requester{ID: uuid.New(), Role: user.RoleJobSeeker}, a, j) {
		t.Fatalf("stranger must not mutate status")
	}

	other := job.Job{ID: uuid.New(), PostedBy: poster}
	if CanMutateApplicationStatus(Requester{ID: poster, Role: user.RoleRecruiter}, a, other) {
		t.Fatalf("mismatched job must be rejected")
	}
}

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role      user.Role
		createJob bool
		apply     bool
	}{
		{user.RoleAdmin, true, false},
		{user.RoleRecruiter, true, false},
		{user.RoleJobSeeker, false, true},
	}
	for _, tc := range cases {
		r := Requester{ID: uuid.New(), Role: tc.role}
		if CanCreateJob(r) != tc.createJob {
			t.Fatalf("CanCreateJob(%s) expected %t", tc.role, tc.createJob)
		}
		if CanApply(r) != tc.apply {
			t.Fatalf("CanApply(%s) expected %t", tc.role, tc.apply)
		}
	}
}

func TestTransitionPolicies(t *testing.T) {
	p := NewTransitionPolicy(false)
	if !p.Allow(application.StatusAccepted, application.StatusRejected) {
		t.Fatalf("permissive policy should allow terminal overwrite")
	}

	s := NewTransitionPolicy(true)
	if !s.Allow(application.StatusPending, application.StatusAccepted) {
		t.Fatalf("strict policy should allow leaving PENDING")
	}
	if !s.Allow(application.StatusAccepted, application.StatusAccepted) {
		t.Fatalf("strict policy should allow same-state writes")
	}
	if s.Allow(application.StatusAccepted, application.StatusRejected) {
		t.Fatalf("strict policy should reject terminal overwrite")
	}
	if s.Allow(application.StatusRejected, application.StatusPending) {
		t.Fatalf("strict policy should reject reopening")
	}
}
