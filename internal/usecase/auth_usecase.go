package usecase

import (
	"context"
	"errors"

	"job-portal/internal/domain/user"
	"job-portal/internal/pkg/jwt"
	ucauth "job-portal/internal/usecase/auth"
)

type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (ucauth.Registration, AuthTokens, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (AuthTokens, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
}

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(users), users: users, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (ucauth.Registration, AuthTokens, error) {
	reg, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return ucauth.Registration{}, AuthTokens{}, err
	}

	tokens, err := u.issue(reg.User)
	if err != nil {
		return ucauth.Registration{}, AuthTokens{}, err
	}
	return reg, tokens, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, AuthTokens, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, AuthTokens{}, err
	}

	tokens, err := u.issue(usr)
	if err != nil {
		return user.User{}, AuthTokens{}, err
	}
	return usr, tokens, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (AuthTokens, error) {
	if refreshToken == "" {
		return AuthTokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AuthTokens{}, ErrRefreshTokenExpired
		}
		return AuthTokens{}, ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return AuthTokens{}, ErrInvalidRefreshToken
	}

	// Re-read the user so a rotated token carries current username and role.
	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthTokens{}, ErrInvalidRefreshToken
		}
		return AuthTokens{}, ErrInternal
	}

	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (AuthTokens, error) {
	access, err := u.jwt.GenerateAccessToken(jwt.Identity{
		UserID:   usr.ID,
		Username: usr.Username,
		Email:    usr.Email,
		Role:     string(usr.Role),
	})
	if err != nil {
		return AuthTokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthTokens{}, ErrInternal
	}
	return AuthTokens{AccessToken: access, RefreshToken: refresh}, nil
}
