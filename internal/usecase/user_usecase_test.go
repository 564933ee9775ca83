package usecase

import (
	"context"
	"errors"
	"testing"

	"job-portal/internal/domain/user"
	ucuser "job-portal/internal/usecase/user"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUsers_UpdateProfile(t *testing.T) {
	me := user.User{ID: uuid.New(), Email: "me@example.com", Role: user.RoleRecruiter, PasswordHash: "hash"}
	other := user.User{ID: uuid.New(), Email: "taken@example.com", Role: user.RoleJobSeeker}
	uc := NewUserUsecase(newMemUsers(me, other), nil, quietLogger())
	ctx := context.Background()

	got, err := uc.UpdateProfile(ctx, me.ID, ucuser.UpdateProfileInput{
		FullName:   strPtr("  Me Myself "),
		Experience: intPtr(4),
		Company:    strPtr("Initech"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.FullName != "Me Myself" || got.Company != "Initech" || got.Experience == nil || *got.Experience != 4 {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if got.Role != user.RoleRecruiter {
		t.Fatalf("role must not change")
	}
	if got.PasswordHash != "" {
		t.Fatalf("password hash must not leak")
	}

	if _, err := uc.UpdateProfile(ctx, me.ID, ucuser.UpdateProfileInput{Experience: intPtr(-1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateProfile(ctx, me.ID, ucuser.UpdateProfileInput{Email: strPtr("not-an-email")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.UpdateProfile(ctx, me.ID, ucuser.UpdateProfileInput{Email: strPtr("Taken@Example.com")}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := uc.GetProfile(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUsers_UpdateSkills_InvalidatesCache(t *testing.T) {
	me := user.User{ID: uuid.New(), Role: user.RoleJobSeeker}
	cache := newMemCache()
	cache.data[MatchingCacheKey(me.ID)] = []byte("[]")
	uc := NewUserUsecase(newMemUsers(me), cache, quietLogger())

	got, err := uc.UpdateSkills(context.Background(), me.ID, "  Go, SQL ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Skills != "Go, SQL" {
		t.Fatalf("unexpected skills %q", got.Skills)
	}
	if cache.Has(MatchingCacheKey(me.ID)) {
		t.Fatalf("expected cache entry removed")
	}
}
