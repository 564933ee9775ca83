package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"job-portal/internal/domain/user"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRoleNotAllowed     = errors.New("role cannot be self-registered")
	ErrInternal           = errors.New("internal error")
)

const minPasswordLength = 8

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
	Skills   string
	Company  string
	Position string
}

type LoginInput struct {
	Username string
	Password string
}

// Registration reports whether the requested role was unrecognised and
// replaced by the default.
type Registration struct {
	User          user.User
	RoleDefaulted bool
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Registration, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	if username == "" || !isValidEmail(email) || !isValidPassword(in.Password) {
		return Registration{}, ErrInvalidInput
	}

	role, defaulted := user.ParseRole(in.Role)
	if role == user.RoleAdmin {
		return Registration{}, ErrRoleNotAllowed
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return Registration{}, ErrInternal
	}
	if exists {
		return Registration{}, ErrUsernameTaken
	}
	exists, err = s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Registration{}, ErrInternal
	}
	if exists {
		return Registration{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return Registration{}, ErrInternal
	}

	u := user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(in.FullName),
		Role:         role,
		Skills:       strings.TrimSpace(in.Skills),
		Company:      strings.TrimSpace(in.Company),
		Position:     strings.TrimSpace(in.Position),
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			// Lost a race with a concurrent registration; report whichever key collided.
			if taken, exErr := s.users.ExistsByUsername(ctx, username); exErr == nil && taken {
				return Registration{}, ErrUsernameTaken
			}
			return Registration{}, ErrEmailTaken
		}
		return Registration{}, ErrInternal
	}

	created, err := s.users.GetByID(ctx, u.ID)
	if err != nil {
		return Registration{}, ErrInternal
	}
	return Registration{User: sanitizeUser(created), RoleDefaulted: defaulted}, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

// HashPassword is shared with the seeders so stored hashes use one cost.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrInternal
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var emailValidator = validator.New()

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailValidator.Var(email, "email") == nil
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
