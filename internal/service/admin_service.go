// internal/service/admin_service.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/filter"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

// AdminService backs the admin dashboard. Every call requires the admin
// role on the caller's profile.
type AdminService struct {
	ProfileRepo     repository.ProfileRepositoryInterface
	TestimonialRepo repository.TestimonialRepositoryInterface
	Logger          *zap.Logger
}

type AdminStats struct {
	TotalUsers          int `json:"total_users"`
	ProUsers            int `json:"pro_users"`
	EnterpriseUsers     int `json:"enterprise_users"`
	PendingTestimonials int `json:"pending_testimonials"`
}

type TestimonialSplit struct {
	Pending  []*model.Testimonial `json:"pending"`
	Approved []*model.Testimonial `json:"approved"`
}

func (s *AdminService) requireAdmin(ctx context.Context) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	p, err := s.ProfileRepo.GetByUserID(ctx, owner)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	if p == nil || p.Role != model.RoleAdmin {
		return appErrors.ErrForbidden
	}
	return nil
}

// LoadUsers fetches every profile, newest first.
func (s *AdminService) LoadUsers(ctx context.Context) ([]*model.Profile, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.ProfileRepo.ListAll(ctx, repository.Desc("created_at"))
}

// LoadTestimonials fetches every testimonial, newest first.
func (s *AdminService) LoadTestimonials(ctx context.Context) ([]*model.Testimonial, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.TestimonialRepo.List(ctx, repository.Desc("created_at"))
}

func (s *AdminService) ListUsers(ctx context.Context, criteria filter.UserCriteria) ([]*model.Profile, error) {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return criteria.Apply(users), nil
}

func (s *AdminService) Testimonials(ctx context.Context) (*TestimonialSplit, error) {
	all, err := s.LoadTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	pending, approved := filter.SplitTestimonials(all)
	return &TestimonialSplit{Pending: pending, Approved: approved}, nil
}

// ComputeStats derives the dashboard counters from already fetched lists.
func ComputeStats(users []*model.Profile, testimonials []*model.Testimonial) AdminStats {
	stats := AdminStats{TotalUsers: len(users)}
	for _, u := range users {
		switch u.SubscriptionTier {
		case model.TierPro:
			stats.ProUsers++
		case model.TierEnterprise:
			stats.EnterpriseUsers++
		}
	}
	pending, _ := filter.SplitTestimonials(testimonials)
	stats.PendingTestimonials = len(pending)
	return stats
}

func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.TestimonialRepo.List(ctx, repository.Desc("created_at"))
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(users, testimonials)
	return &stats, nil
}

func (s *AdminService) ApproveTestimonial(ctx context.Context, id string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.TestimonialRepo.Approve(ctx, id); err != nil {
		return err
	}
	s.logger().Info("testimonial approved", zap.String("testimonial_id", id))
	return nil
}

// RejectTestimonial deletes the testimonial.
func (s *AdminService) RejectTestimonial(ctx context.Context, id string) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.TestimonialRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger().Info("testimonial rejected", zap.String("testimonial_id", id))
	return nil
}

func (s *AdminService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
