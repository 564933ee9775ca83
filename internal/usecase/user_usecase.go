package usecase

import (
	"context"
	"errors"
	"log"

	"job-portal/internal/domain/user"
	ucuser "job-portal/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.User, error)
	UpdateSkills(ctx context.Context, userID uuid.UUID, skills string) (user.User, error)
}

type Users struct {
	svc    *ucuser.Service
	cache  MatchingCache
	logger *log.Logger
}

func NewUserUsecase(users user.Repository, cache MatchingCache, logger *log.Logger) *Users {
	if logger == nil {
		logger = log.Default()
	}
	return &Users{svc: ucuser.NewService(users), cache: cache, logger: logger}
}

func (u *Users) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.svc.GetProfile(ctx, userID)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	return usr, nil
}

func (u *Users) UpdateProfile(ctx context.Context, userID uuid.UUID, in ucuser.UpdateProfileInput) (user.User, error) {
	usr, err := u.svc.UpdateProfile(ctx, userID, in)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	return usr, nil
}

// UpdateSkills drops the user's cached ranking. Scores frozen on existing
// applications are left alone.
func (u *Users) UpdateSkills(ctx context.Context, userID uuid.UUID, skills string) (user.User, error) {
	usr, err := u.svc.UpdateSkills(ctx, userID, skills)
	if err != nil {
		return user.User{}, mapUserErr(err)
	}
	if u.cache != nil {
		if err := u.cache.Delete(ctx, MatchingCacheKey(userID)); err != nil {
			u.logger.Printf("cache=matching op=invalidate status=error user_id=%s err=%v", userID, err)
		}
	}
	u.logger.Printf("user=update_skills status=ok user_id=%s", userID)
	return usr, nil
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ucuser.ErrEmailTaken):
		return ErrConflict
	case errors.Is(err, ucuser.ErrInvalidInput):
		return ErrInvalidInput
	default:
		return ErrInternal
	}
}
