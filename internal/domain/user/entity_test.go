package user

import "testing"

func TestParseRole(t *testing.T) {
	got, defaulted := ParseRole("recruiter")
	if defaulted || got != RoleRecruiter {
		t.Fatalf("expected RECRUITER, got %s defaulted=%t", got, defaulted)
	}

	got, defaulted = ParseRole("job-seeker")
	if defaulted || got != RoleJobSeeker {
		t.Fatalf("expected JOBSEEKER, got %s defaulted=%t", got, defaulted)
	}

	got, defaulted = ParseRole("superuser")
	if !defaulted || got != RoleJobSeeker {
		t.Fatalf("expected JOBSEEKER fallback, got %s defaulted=%t", got, defaulted)
	}
}

func TestRoleValid(t *testing.T) {
	if !RoleAdmin.Valid() {
		t.Fatalf("ADMIN should be valid")
	}
	if Role("OWNER").Valid() {
		t.Fatalf("OWNER should not be valid")
	}
}
