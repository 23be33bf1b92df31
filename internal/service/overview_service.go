// internal/service/overview_service.go
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

type OverviewService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	PostRepo     repository.SocialPostRepositoryInterface
	UsageRepo    repository.UsageRepositoryInterface
}

type Overview struct {
	Campaigns       int            `json:"campaigns"`
	ActiveCampaigns int            `json:"active_campaigns"`
	CampaignStatus  map[string]int `json:"campaign_status"`
	Posts           int            `json:"posts"`
	PostStatus      map[string]int `json:"post_status"`
	Generations     map[string]int `json:"generations"`
}

// Overview gathers the dashboard home counters in parallel.
func (s *OverviewService) Overview(ctx context.Context) (*Overview, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	var campaigns, posts, usage map[string]int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		campaigns, err = s.CampaignRepo.CountByStatus(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		posts, err = s.PostRepo.CountByStatus(gctx, owner)
		return err
	})
	g.Go(func() (err error) {
		usage, err = s.UsageRepo.Summary(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Overview{
		CampaignStatus:  campaigns,
		ActiveCampaigns: campaigns[model.CampaignStatusActive],
		PostStatus:      posts,
		Generations:     usage,
	}
	for _, n := range campaigns {
		out.Campaigns += n
	}
	for _, n := range posts {
		out.Posts += n
	}
	return out, nil
}
