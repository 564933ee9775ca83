package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestHMACService_AccessTokenCarriesIdentity(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	id := Identity{UserID: uuid.New(), Username: "ana", Email: "ana@example.com", Role: "RECRUITER"}

	tok, err := svc.GenerateAccessToken(id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.UserID != id.UserID || c.Username != "ana" || c.Role != "RECRUITER" || c.Email != "ana@example.com" {
		t.Fatalf("unexpected claims: %+v", c)
	}
	if svc.IsRefreshToken(c) {
		t.Fatalf("expected access token")
	}
}

func TestHMACService_RefreshToken(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	uid := uuid.New()

	tok, err := svc.GenerateRefreshToken(uid)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !svc.IsRefreshToken(c) || c.UserID != uid {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := svc.GenerateAccessToken(Identity{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	svc.now = time.Now
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_Garbage(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)
	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_RejectsTokenSignedForOtherType(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", time.Minute, time.Hour)

	now := time.Now()
	forged := Claims{
		UserID:    uuid.New(),
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, forged).SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_MissingSecretCannotSign(t *testing.T) {
	svc := NewHMACService("", "refresh-secret", time.Minute, time.Hour)
	if _, err := svc.GenerateAccessToken(Identity{UserID: uuid.New()}); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
