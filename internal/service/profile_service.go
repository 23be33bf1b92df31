// internal/service/profile_service.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

type ProfileService struct {
	ProfileRepo repository.ProfileRepositoryInterface
}

// ProfileInput holds the fields a user may edit on their own profile.
type ProfileInput struct {
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio"`
	Website   string `json:"website"`
	AvatarURL string `json:"avatar_url"`
}

// DefaultUsername is the local part of email, or "user".
func DefaultUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local = strings.TrimSpace(local); local == "" {
		return "user"
	}
	return local
}

// GetProfile returns the caller's profile, creating the default one on first
// access.
func (s *ProfileService) GetProfile(ctx context.Context) (*model.Profile, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.ProfileRepo.GetByUserID(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	if p != nil {
		return p, nil
	}
	p = &model.Profile{UserID: owner, Username: DefaultUsername(auth.EmailFromContext(ctx))}
	if err := s.ProfileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, in ProfileInput) (*model.Profile, error) {
	if err := required("username", in.Username, "Please enter a username"); err != nil {
		return nil, err
	}
	current, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	p := *current
	p.Username = strings.TrimSpace(in.Username)
	p.FullName = in.FullName
	p.Bio = in.Bio
	p.Website = in.Website
	p.AvatarURL = in.AvatarURL
	if err := s.ProfileRepo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Upgrade is not available until a payment processor is wired in.
func (s *ProfileService) Upgrade(ctx context.Context, tier string) error {
	if _, err := auth.CurrentUser(ctx); err != nil {
		return err
	}
	switch tier {
	case model.TierPro, model.TierEnterprise:
	default:
		return appErrors.NewValidation("tier", "unknown subscription tier")
	}
	return fmt.Errorf("upgrade coming soon: %w", appErrors.ErrNotImplemented)
}

// IsAdmin reports whether the caller's profile carries the admin role.
func (s *ProfileService) IsAdmin(ctx context.Context) (bool, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	p, err := s.ProfileRepo.GetByUserID(ctx, owner)
	if err != nil {
		return false, err
	}
	return p != nil && p.Role == model.RoleAdmin, nil
}
