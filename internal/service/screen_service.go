// internal/service/screen_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/fetcher"
	"github.com/unclebandit/creatorhub-backend/internal/filter"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/screen"
)

// LoadFailedNotice is shown on a screen whose mount fetch failed.
const LoadFailedNotice = "Failed to load data"

// ScreenService runs the stateful dashboard sections on top of the screen
// manager.
type ScreenService struct {
	Manager   *screen.Manager
	Creators  *CreatorService
	Campaigns *CampaignService
	Admin     *AdminService
	AssetRepo repository.ContentAssetRepositoryInterface
	Logger    *zap.Logger
}

// ScreenView is the client-visible state of one screen.
type ScreenView struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Notice string `json:"notice,omitempty"`
	Loaded bool   `json:"loaded"`

	Creators     []*model.Creator      `json:"creators,omitempty"`
	Campaigns    []*model.Campaign     `json:"campaigns,omitempty"`
	Users        []*model.Profile      `json:"users,omitempty"`
	Testimonials *TestimonialSplit     `json:"testimonials,omitempty"`
	Stats        *AdminStats           `json:"stats,omitempty"`
	Items        []model.GeneratedItem `json:"items,omitempty"`
	Messages     []model.ChatMessage   `json:"messages,omitempty"`

	State     string `json:"state,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

func (s *ScreenService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Open creates a screen and performs its mount fetch. A failed mount fetch
// still opens the screen, empty, with a notice.
func (s *ScreenService) Open(ctx context.Context, kindName string) (*ScreenView, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	kind, err := screen.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	if kind == screen.KindAdmin {
		if err := s.Admin.requireAdmin(ctx); err != nil {
			return nil, err
		}
	}
	sc, err := s.Manager.Open(owner, kind)
	if err != nil {
		return nil, err
	}

	notice := ""
	if kind.Fetches() {
		if err := s.refresh(ctx, sc); err != nil {
			s.logger().Warn("mount fetch failed",
				zap.String("screen_id", sc.ID),
				zap.String("kind", kindName),
				zap.Error(err),
			)
			notice = LoadFailedNotice
		}
	}
	v := s.view(sc)
	v.Notice = notice
	return v, nil
}

func (s *ScreenService) screen(ctx context.Context, id string) (*screen.Screen, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return s.Manager.Get(owner, id)
}

// View returns the screen's current state without fetching.
func (s *ScreenService) View(ctx context.Context, id string) (*ScreenView, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sc), nil
}

// Refresh refetches every collection the screen holds.
func (s *ScreenService) Refresh(ctx context.Context, id string) (*ScreenView, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sc.Kind.Fetches() {
		return nil, appErrors.NewValidation("kind", "screen has no remote data")
	}
	if err := s.refresh(ctx, sc); err != nil {
		return nil, err
	}
	return s.view(sc), nil
}

func (s *ScreenService) Close(ctx context.Context, id string) error {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.Manager.Close(owner, id)
}

func (s *ScreenService) refresh(ctx context.Context, sc *screen.Screen) error {
	ctx, cancel := sc.Bind(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if sc.Creators != nil {
		g.Go(func() error {
			return fetch(gctx, sc.Creators, func(ctx context.Context) ([]*model.Creator, error) {
				return s.Creators.CreatorRepo.List(ctx, repository.Desc("followers_count"))
			})
		})
	}
	if sc.Campaigns != nil {
		g.Go(func() error {
			return fetch(gctx, sc.Campaigns, s.Campaigns.ListCampaigns)
		})
	}
	if sc.Users != nil {
		g.Go(func() error {
			return fetch(gctx, sc.Users, s.Admin.LoadUsers)
		})
	}
	if sc.Testimonials != nil {
		g.Go(func() error {
			return fetch(gctx, sc.Testimonials, s.Admin.LoadTestimonials)
		})
	}
	return g.Wait()
}

// fetch treats a superseded response as success; the newer fetch owns the
// list.
func fetch[T any](ctx context.Context, f *fetcher.Fetcher[T], load fetcher.LoadFunc[T]) error {
	_, err := f.Fetch(ctx, load)
	if errors.Is(err, fetcher.ErrStale) {
		return nil
	}
	return err
}

func (s *ScreenService) view(sc *screen.Screen) *ScreenView {
	v := &ScreenView{ID: sc.ID, Kind: string(sc.Kind)}
	switch {
	case sc.Creators != nil:
		v.Creators = sc.Creators.Items()
		v.Campaigns = sc.Campaigns.Items()
		v.Loaded = sc.Creators.Loaded()
	case sc.Campaigns != nil:
		v.Campaigns = sc.Campaigns.Items()
		v.Loaded = sc.Campaigns.Loaded()
	case sc.Users != nil:
		users, testimonials := sc.Users.Items(), sc.Testimonials.Items()
		pending, approved := filter.SplitTestimonials(testimonials)
		stats := ComputeStats(users, testimonials)
		v.Users = users
		v.Testimonials = &TestimonialSplit{Pending: pending, Approved: approved}
		v.Stats = &stats
		v.Loaded = sc.Users.Loaded() && sc.Testimonials.Loaded()
	case sc.Studio != nil:
		v.Items = sc.Studio.Feed.Items()
		v.State, v.LastError = runnerState(sc.Studio.Runner)
		v.Loaded = true
	case sc.Chat != nil:
		v.Messages = sc.Chat.Messages()
		v.State, v.LastError = runnerState(sc.Chat.Runner)
		v.Loaded = true
	}
	return v
}

func runnerState(r *generator.Runner) (string, string) {
	state, err := r.State()
	if err != nil {
		return string(state), err.Error()
	}
	return string(state), ""
}

// FilterCreators narrows the screen's fetched creators. It never refetches.
func (s *ScreenService) FilterCreators(ctx context.Context, id string, c filter.CreatorCriteria) ([]*model.Creator, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Creators == nil {
		return nil, wrongKind(sc)
	}
	return c.Apply(sc.Creators.Items()), nil
}

func (s *ScreenService) FilterCampaigns(ctx context.Context, id string, c filter.CampaignCriteria) ([]*model.Campaign, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Campaigns == nil {
		return nil, wrongKind(sc)
	}
	return c.Apply(sc.Campaigns.Items()), nil
}

func (s *ScreenService) FilterUsers(ctx context.Context, id string, c filter.UserCriteria) ([]*model.Profile, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Users == nil {
		return nil, wrongKind(sc)
	}
	return c.Apply(sc.Users.Items()), nil
}

// Shortlist attaches a creator shown on a discovery screen to one of the
// caller's campaigns.
func (s *ScreenService) Shortlist(ctx context.Context, id, campaignID string, in AttachInput) (*model.CampaignCreator, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Kind != screen.KindCreatorDiscovery {
		return nil, wrongKind(sc)
	}
	return s.Campaigns.AttachCreator(ctx, campaignID, in)
}

// ApproveTestimonial approves id and refetches the admin testimonial list.
func (s *ScreenService) ApproveTestimonial(ctx context.Context, id, testimonialID string) (*ScreenView, error) {
	return s.moderate(ctx, id, testimonialID, s.Admin.ApproveTestimonial)
}

// RejectTestimonial deletes id and refetches the admin testimonial list.
func (s *ScreenService) RejectTestimonial(ctx context.Context, id, testimonialID string) (*ScreenView, error) {
	return s.moderate(ctx, id, testimonialID, s.Admin.RejectTestimonial)
}

func (s *ScreenService) moderate(ctx context.Context, id, testimonialID string, act func(context.Context, string) error) (*ScreenView, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Testimonials == nil {
		return nil, wrongKind(sc)
	}
	if err := act(ctx, testimonialID); err != nil {
		return nil, err
	}
	bound, cancel := sc.Bind(ctx)
	defer cancel()
	if err := fetch(bound, sc.Testimonials, s.Admin.LoadTestimonials); err != nil {
		return nil, fmt.Errorf("refetch testimonials: %w", err)
	}
	return s.view(sc), nil
}

func (s *ScreenService) studio(ctx context.Context, id string) (*screen.Screen, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc.Studio == nil {
		return nil, wrongKind(sc)
	}
	return sc, nil
}

type studioCall func(ctx context.Context, st *generator.Studio) (model.GeneratedItem, error)

func (s *ScreenService) generate(ctx context.Context, id string, call studioCall) (model.GeneratedItem, error) {
	sc, err := s.studio(ctx, id)
	if err != nil {
		return model.GeneratedItem{}, err
	}
	bound, cancel := sc.Bind(ctx)
	defer cancel()
	return call(bound, sc.Studio)
}

func (s *ScreenService) GenerateCaption(ctx context.Context, id string, req generator.CaptionRequest) (model.GeneratedItem, error) {
	return s.generate(ctx, id, func(ctx context.Context, st *generator.Studio) (model.GeneratedItem, error) {
		return st.GenerateCaption(ctx, req)
	})
}

func (s *ScreenService) RegenerateCaption(ctx context.Context, id, itemID string, req generator.CaptionRequest) (model.GeneratedItem, error) {
	return s.generate(ctx, id, func(ctx context.Context, st *generator.Studio) (model.GeneratedItem, error) {
		return st.RegenerateCaption(ctx, itemID, req)
	})
}

func (s *ScreenService) GeneratePoster(ctx context.Context, id string, req generator.ProductRequest) (model.GeneratedItem, error) {
	return s.generate(ctx, id, func(ctx context.Context, st *generator.Studio) (model.GeneratedItem, error) {
		return st.GeneratePoster(ctx, req)
	})
}

func (s *ScreenService) GenerateProductCaption(ctx context.Context, id string, req generator.ProductRequest) (model.GeneratedItem, error) {
	return s.generate(ctx, id, func(ctx context.Context, st *generator.Studio) (model.GeneratedItem, error) {
		return st.GenerateProductCaption(ctx, req)
	})
}

// EditVideo runs the mock video edit over the caller's uploaded videos.
func (s *ScreenService) EditVideo(ctx context.Context, id string) (model.GeneratedItem, error) {
	owner, err := auth.CurrentUser(ctx)
	if err != nil {
		return model.GeneratedItem{}, err
	}
	return s.generate(ctx, id, func(ctx context.Context, st *generator.Studio) (model.GeneratedItem, error) {
		assets, err := s.AssetRepo.ListByOwner(ctx, owner, repository.Desc("created_at"))
		if err != nil {
			return model.GeneratedItem{}, err
		}
		return st.EditVideo(ctx, assets)
	})
}

func (s *ScreenService) DeleteItem(ctx context.Context, id, itemID string) error {
	sc, err := s.studio(ctx, id)
	if err != nil {
		return err
	}
	return sc.Studio.Delete(itemID)
}

func (s *ScreenService) Send(ctx context.Context, id, text string) (model.ChatMessage, error) {
	sc, err := s.screen(ctx, id)
	if err != nil {
		return model.ChatMessage{}, err
	}
	if sc.Chat == nil {
		return model.ChatMessage{}, wrongKind(sc)
	}
	bound, cancel := sc.Bind(ctx)
	defer cancel()
	return sc.Chat.Send(bound, text)
}

func wrongKind(sc *screen.Screen) error {
	return appErrors.NewValidation("screen", fmt.Sprintf("not supported on a %s screen", sc.Kind))
}
