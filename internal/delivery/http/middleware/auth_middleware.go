package middleware

import (
	"errors"
	"strings"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"
	"job-portal/internal/policy"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUsernameKey = "username"
	CtxEmailKey    = "email"
	CtxRoleKey     = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.accessClaims(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

// Optional resolves the caller when a valid access token is present and
// otherwise lets the request through anonymously.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if ok {
			if claims, err := m.accessClaims(token); err == nil {
				setIdentity(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireRoles must run after Middleware.
func RequireRoles(roles ...user.Role) fiber.Handler {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c fiber.Ctx) error {
		r, ok := RequesterFrom(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if _, ok := allowed[r.Role]; !ok {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}

// RequesterFrom returns the identity set by the auth middleware.
func RequesterFrom(c fiber.Ctx) (policy.Requester, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return policy.Requester{}, false
	}
	role, _ := c.Locals(CtxRoleKey).(user.Role)
	return policy.Requester{ID: id, Role: role}, true
}

func (m *AuthMiddleware) accessClaims(token string) (jwt.Claims, error) {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return jwt.Claims{}, err
	}
	if claims.TokenType != jwt.TokenTypeAccess || m.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, jwt.ErrTokenInvalid
	}
	return claims, nil
}

func setIdentity(c fiber.Ctx, claims jwt.Claims) {
	role := user.Role(claims.Role)
	if !role.Valid() {
		role = ""
	}
	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxUsernameKey, claims.Username)
	c.Locals(CtxEmailKey, claims.Email)
	c.Locals(CtxRoleKey, role)
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
