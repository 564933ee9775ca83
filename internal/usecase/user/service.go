package user

import (
	"context"
	"errors"
	"strings"

	"job-portal/internal/domain/user"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInternal     = errors.New("internal error")
)

type UpdateProfileInput struct {
	FullName   *string
	Email      *string
	Education  *string
	Experience *int
	Position   *string
	Company    *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

// UpdateProfile never touches role or skills.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	p := user.ProfileUpdate{
		FullName:  trimmed(in.FullName),
		Education: trimmed(in.Education),
		Position:  trimmed(in.Position),
		Company:   trimmed(in.Company),
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !isValidEmail(email) {
			return user.User{}, ErrInvalidInput
		}
		p.Email = &email
	}
	if in.Experience != nil {
		if *in.Experience < 0 {
			return user.User{}, ErrInvalidInput
		}
		exp := *in.Experience
		p.Experience = &exp
	}

	updated, err := s.users.UpdateProfile(ctx, userID, p)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicate):
			return user.User{}, ErrEmailTaken
		case errors.Is(err, user.ErrNotFound):
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func (s *Service) UpdateSkills(ctx context.Context, userID uuid.UUID, skills string) (user.User, error) {
	updated, err := s.users.UpdateSkills(ctx, userID, strings.TrimSpace(skills))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(updated), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
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

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
