// Package jwt issues and verifies the HS256 access and refresh tokens.
// Each token type is signed with its own secret.
package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role,omitempty"`
	TokenType string    `json:"token_type"`

	jwtlib.RegisteredClaims
}

// Identity is what an access token asserts about its bearer.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     string
}

type Service interface {
	GenerateAccessToken(id Identity) (string, error)
	GenerateRefreshToken(userID uuid.UUID) (string, error)
	ValidateToken(tokenString string) (Claims, error)
	IsRefreshToken(claims Claims) bool
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

type HMACService struct {
	keys map[string]signingKey
	now  func() time.Time
}

func NewHMACService(accessSecret, refreshSecret string, accessExpiresIn, refreshExpiresIn time.Duration) *HMACService {
	return &HMACService{
		keys: map[string]signingKey{
			TokenTypeAccess:  {secret: []byte(accessSecret), ttl: accessExpiresIn},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: refreshExpiresIn},
		},
		now: time.Now,
	}
}

func (s *HMACService) GenerateAccessToken(id Identity) (string, error) {
	return s.sign(TokenTypeAccess, id)
}

func (s *HMACService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.sign(TokenTypeRefresh, Identity{UserID: userID})
}

func (s *HMACService) IsRefreshToken(claims Claims) bool {
	return claims.TokenType == TokenTypeRefresh
}

// ValidateToken verifies the signature against the secret of the token type
// the token claims to be, so a token cannot be replayed as the other type.
func (s *HMACService) ValidateToken(tokenString string) (Claims, error) {
	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	_, err := parser.ParseWithClaims(tokenString, &c, func(t *jwtlib.Token) (any, error) {
		claims, ok := t.Claims.(*Claims)
		if !ok {
			return nil, ErrTokenInvalid
		}
		key, ok := s.keys[claims.TokenType]
		if !ok || len(key.secret) == 0 {
			return nil, ErrTokenInvalid
		}
		return key.secret, nil
	})
	switch {
	case err == nil:
		return c, nil
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	default:
		return Claims{}, ErrTokenInvalid
	}
}

func (s *HMACService) sign(tokenType string, id Identity) (string, error) {
	key, ok := s.keys[tokenType]
	if !ok || len(key.secret) == 0 || key.ttl <= 0 {
		return "", ErrTokenInvalid
	}

	now := s.now().UTC()
	c := Claims{
		UserID:    id.UserID,
		Username:  id.Username,
		Email:     id.Email,
		Role:      id.Role,
		TokenType: tokenType,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(key.ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(key.secret)
}
