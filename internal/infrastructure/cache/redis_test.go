package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRedis_BypassWhenUnavailable(t *testing.T) {
	r := &Redis{}
	ctx := context.Background()

	var out map[string]any
	hit, err := r.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected miss without error, got hit=%v err=%v", hit, err)
	}
	if err := r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := r.DeleteByPattern(ctx, "jobs:matching:*"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ok, err := r.SetIfNotExists(ctx, "matches:recompute:lock", "1", time.Minute)
	if err != nil || ok {
		t.Fatalf("expected lock not acquired without redis, got ok=%v err=%v", ok, err)
	}
	released, err := r.DeleteIfValue(ctx, "matches:recompute:lock", "token")
	if err != nil || released {
		t.Fatalf("expected no-op release without redis, got released=%v err=%v", released, err)
	}
	if r.Available() {
		t.Fatalf("expected unavailable")
	}
	if err := r.Ping(ctx); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestDefaultTTL(t *testing.T) {
	if got := (&Redis{}).defaultTTL(); got != 600*time.Second {
		t.Fatalf("expected 600s, got %v", got)
	}
	if got := (&Redis{ttl: time.Minute}).defaultTTL(); got != time.Minute {
		t.Fatalf("expected 1m, got %v", got)
	}
}

func TestOrDefault(t *testing.T) {
	if got := orDefault("  ", "localhost"); got != "localhost" {
		t.Fatalf("expected default, got %q", got)
	}
	if got := orDefault(" redis ", "localhost"); got != "redis" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}
