// internal/service/post_service.go
package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/filter"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/queue"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/templates"
)

// PostStore is everything the posting section needs from social_posts.
type PostStore interface {
	repository.SocialPostRepositoryInterface
	repository.PostStatusStore
}

type PostService struct {
	PostRepo    PostStore
	AccountRepo repository.SocialAccountRepositoryInterface
	Queue       queue.Queue
	Tables      *templates.Set
	Logger      *zap.Logger
	Now         func() time.Time
}

// ComposeInput is the multi-platform post form.
type ComposeInput struct {
	Content      string     `json:"content"`
	Hashtags     []string   `json:"hashtags"`
	Platforms    []string   `json:"platforms"`
	PostNow      bool       `json:"post_now"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	CampaignID   *string    `json:"campaign_id,omitempty"`
}

func (s *PostService) tables() *templates.Set {
	if s.Tables == nil {
		return templates.Default()
	}
	return s.Tables
}

func (s *PostService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *PostService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *PostService) validate(in ComposeInput) ([]string, error) {
	if err := required("content", in.Content, "Please enter post content"); err != nil {
		return nil, err
	}
	if len(in.Platforms) == 0 {
		return nil, appErrors.NewValidation("platforms", "Please select at least one platform")
	}
	seen := make(map[string]bool, len(in.Platforms))
	platforms := make([]string, 0, len(in.Platforms))
	for _, p := range in.Platforms {
		if !s.tables().IsPlatform(p) {
			return nil, appErrors.NewValidation("platforms", "unknown platform "+p)
		}
		if !seen[p] {
			seen[p] = true
			platforms = append(platforms, p)
		}
	}
	if !in.PostNow {
		if in.ScheduledFor == nil {
			return nil, appErrors.NewValidation("scheduled_for", "Please choose when to publish")
		}
		if in.ScheduledFor.Before(s.now()) {
			return nil, appErrors.NewValidation("scheduled_for", "must be in the future")
		}
	}
	return platforms, nil
}

// Compose stores the post as scheduled. Posting now also enqueues the
// simulated publication; a later schedule is only recorded.
func (s *PostService) Compose(ctx context.Context, in ComposeInput) (*model.SocialPost, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	platforms, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	when := in.ScheduledFor
	if in.PostNow {
		t := s.now()
		when = &t
	}
	hashtags := in.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	p := &model.SocialPost{
		UserID:       owner,
		CampaignID:   in.CampaignID,
		Caption:      strings.TrimSpace(in.Content),
		Hashtags:     hashtags,
		Platforms:    platforms,
		ScheduledFor: when,
		Status:       model.PostStatusScheduled,
	}
	if err := s.PostRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	if !in.PostNow {
		return p, nil
	}

	if err := s.Queue.Publish(queue.TopicPostPublish, queue.PublishJob{PostID: p.ID, UserID: owner}); err != nil {
		s.logger().Error("failed to enqueue post", zap.String("post_id", p.ID), zap.Error(err))
		p.Status = model.PostStatusFailed
		p.LastError = "publishing queue unavailable"
		if uerr := s.PostRepo.UpdateStatus(ctx, p.ID, p.Status, p.LastError); uerr != nil {
			s.logger().Error("failed to mark post failed", zap.String("post_id", p.ID), zap.Error(uerr))
		}
	}
	return p, nil
}

func (s *PostService) ListPosts(ctx context.Context, criteria filter.PostCriteria) ([]*model.SocialPost, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.PostRepo.ListByOwner(ctx, owner, repository.Desc("created_at"))
	if err != nil {
		return nil, err
	}
	return criteria.Apply(posts), nil
}

func (s *PostService) DeletePost(ctx context.Context, id string) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.PostRepo.Delete(ctx, owner, id)
}

func (s *PostService) ListAccounts(ctx context.Context) ([]*model.SocialAccount, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.AccountRepo.ListByOwner(ctx, owner)
}

type AccountInput struct {
	Platform      string `json:"platform"`
	AccountHandle string `json:"account_handle"`
}

func (s *PostService) ConnectAccount(ctx context.Context, in AccountInput) (*model.SocialAccount, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !s.tables().IsPlatform(in.Platform) {
		return nil, appErrors.NewValidation("platform", "unknown platform "+in.Platform)
	}
	if err := required("account_handle", in.AccountHandle, "Please enter the account handle"); err != nil {
		return nil, err
	}
	a := &model.SocialAccount{
		UserID:        owner,
		Platform:      in.Platform,
		AccountHandle: strings.TrimSpace(in.AccountHandle),
		IsActive:      true,
	}
	if err := s.AccountRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *PostService) DisconnectAccount(ctx context.Context, id string) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.AccountRepo.Delete(ctx, owner, id)
}
