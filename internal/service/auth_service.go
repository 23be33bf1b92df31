// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

const minPasswordLength = 6

type AuthService struct {
	Users    repository.UserRepositoryInterface
	Profiles repository.ProfileRepositoryInterface
	Tokens   *auth.Tokens
	Logger   *zap.Logger
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
}

func (c Credentials) normalize() (Credentials, error) {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if _, err := mail.ParseAddress(c.Email); err != nil || c.Email == "" {
		return c, appErrors.NewValidation("email", "Please enter a valid email address")
	}
	if len(c.Password) < minPasswordLength {
		return c, appErrors.NewValidation("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	return c, nil
}

// SignUp registers a user and creates their default profile.
func (s *AuthService) SignUp(ctx context.Context, in Credentials) (*Session, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{Email: in.Email, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, appErrors.ErrConflict) {
			return nil, appErrors.NewValidation("email", "An account with this email already exists")
		}
		return nil, err
	}

	p := &model.Profile{UserID: u.ID, Username: DefaultUsername(u.Email), FullName: in.FullName}
	if err := s.Profiles.Create(ctx, p); err != nil {
		// the profile is created lazily on first fetch instead
		s.logger().Warn("default profile not created", zap.String("user_id", u.ID), zap.Error(err))
	}
	s.logger().Info("user signed up", zap.String("user_id", u.ID))
	return s.session(u)
}

// SignIn checks the password and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, in Credentials) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", appErrors.ErrUnauthenticated)
		}
		return nil, err
	}
	if err := auth.VerifyPassword(u.PasswordHash, in.Password); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", appErrors.ErrUnauthenticated)
	}
	return s.session(u)
}

func (s *AuthService) session(u *model.User) (*Session, error) {
	token, exp, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, UserID: u.ID, Email: u.Email}, nil
}

func (s *AuthService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
