package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/filter"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/screen"
	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type screenFixture struct {
	svc          *service.ScreenService
	creators     *MockCreatorRepo
	campaigns    *MockCampaignRepo
	testimonials *MockTestimonialRepo
	assets       *MockAssetRepo
	usage        *MockUsageRepo
}

func newScreenFixture(t *testing.T) *screenFixture {
	t.Helper()
	admin, testimonials := newAdminService()
	campaigns, campaignRepo := newCampaignService()
	f := &screenFixture{
		creators: &MockCreatorRepo{creators: []*model.Creator{
			{ID: "c1", Name: "Ana Lima", Handle: "@ana", Platform: model.CreatorPlatformInstagram, FollowersCount: 80000, Niche: []string{"fashion"}},
			{ID: "c2", Name: "Ben Ode", Handle: "@ben", Platform: model.CreatorPlatformTikTok, FollowersCount: 30000, Niche: []string{"food"}},
		}},
		campaigns:    campaignRepo,
		testimonials: testimonials,
		assets:       &MockAssetRepo{},
		usage:        &MockUsageRepo{},
	}
	manager := screen.NewManager(screen.Options{
		Timeout: time.Second,
		Delays:  generator.Delays{Caption: time.Millisecond, Poster: time.Millisecond, Video: time.Millisecond, Assistant: time.Millisecond},
		Usage:   service.UsageRecorder(f.usage, nil),
	})
	t.Cleanup(manager.CloseAll)
	f.svc = &service.ScreenService{
		Manager:   manager,
		Creators:  &service.CreatorService{CreatorRepo: f.creators},
		Campaigns: campaigns,
		Admin:     admin,
		AssetRepo: f.assets,
	}
	return f
}

func TestScreen_DiscoveryMountAndFilter(t *testing.T) {
	f := newScreenFixture(t)
	ctx := userCtx("alice")
	_, err := f.svc.Campaigns.CreateCampaign(ctx, service.CampaignInput{Title: "Launch"})
	require.NoError(t, err)

	v, err := f.svc.Open(ctx, "creator-discovery")
	require.NoError(t, err)
	assert.True(t, v.Loaded)
	assert.Empty(t, v.Notice)
	assert.Len(t, v.Creators, 2)
	assert.Len(t, v.Campaigns, 1)

	got, err := f.svc.FilterCreators(ctx, v.ID, filter.CreatorCriteria{Search: "ANA"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ID)

	// filtering never refetches
	f.creators.creators = nil
	got, err = f.svc.FilterCreators(ctx, v.ID, filter.CreatorCriteria{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	cc, err := f.svc.Shortlist(ctx, v.ID, v.Campaigns[0].ID, service.AttachInput{CreatorID: "c1", PaymentAmount: 100})
	require.NoError(t, err)
	assert.Equal(t, "c1", cc.CreatorID)
}

func TestScreen_MountFailureShowsNotice(t *testing.T) {
	f := newScreenFixture(t)
	f.creators.err = errors.New("connection refused")

	v, err := f.svc.Open(userCtx("alice"), "creator-discovery")
	require.NoError(t, err)
	assert.Equal(t, service.LoadFailedNotice, v.Notice)
	assert.Empty(t, v.Creators)

	_, err = f.svc.Refresh(userCtx("alice"), v.ID)
	assert.Error(t, err)

	f.creators.err = nil
	f.creators.creators = []*model.Creator{{ID: "c9", Name: "Late"}}
	v, err = f.svc.Refresh(userCtx("alice"), v.ID)
	require.NoError(t, err)
	assert.Len(t, v.Creators, 1)
}

func TestScreen_OwnerAndKindChecks(t *testing.T) {
	f := newScreenFixture(t)

	_, err := f.svc.Open(context.Background(), "campaigns")
	assert.ErrorIs(t, err, appErrors.ErrUnauthenticated)
	_, err = f.svc.Open(userCtx("alice"), "billing")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = f.svc.Open(userCtx("alice"), "admin")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	v, err := f.svc.Open(userCtx("alice"), "campaigns")
	require.NoError(t, err)
	_, err = f.svc.View(userCtx("bob"), v.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	_, err = f.svc.GenerateCaption(userCtx("alice"), v.ID, generator.CaptionRequest{Topic: "x"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, f.svc.Close(userCtx("alice"), v.ID))
	_, err = f.svc.View(userCtx("alice"), v.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestScreen_AdminApproveRefetches(t *testing.T) {
	f := newScreenFixture(t)
	ctx := userCtx("root")

	v, err := f.svc.Open(ctx, "admin")
	require.NoError(t, err)
	require.True(t, v.Loaded)
	pendingBefore := len(v.Testimonials.Pending)
	approvedBefore := len(v.Testimonials.Approved)
	assert.Equal(t, 3, v.Stats.TotalUsers)

	v, err = f.svc.ApproveTestimonial(ctx, v.ID, "t1")
	require.NoError(t, err)
	assert.Len(t, v.Testimonials.Pending, pendingBefore-1)
	assert.Len(t, v.Testimonials.Approved, approvedBefore+1)
	assert.True(t, containsTestimonial(v.Testimonials.Approved, "t1"))

	v, err = f.svc.RejectTestimonial(ctx, v.ID, "t2")
	require.NoError(t, err)
	assert.Empty(t, v.Testimonials.Pending)
	assert.Equal(t, 0, v.Stats.PendingTestimonials)

	users, err := f.svc.FilterUsers(ctx, v.ID, filter.UserCriteria{Tier: model.TierPro})
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestScreen_CaptionWriterFlow(t *testing.T) {
	f := newScreenFixture(t)
	ctx := userCtx("alice")

	v, err := f.svc.Open(ctx, "caption-writer")
	require.NoError(t, err)
	assert.Equal(t, string(generator.StateIdle), v.State)

	first, err := f.svc.GenerateCaption(ctx, v.ID, generator.CaptionRequest{Topic: "Spring sale", Platform: "instagram"})
	require.NoError(t, err)
	second, err := f.svc.GenerateCaption(ctx, v.ID, generator.CaptionRequest{Topic: "Summer sale", Platform: "twitter"})
	require.NoError(t, err)

	v, err = f.svc.View(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, v.Items, 2)
	assert.Equal(t, second.ID, v.Items[0].ID)

	again, err := f.svc.RegenerateCaption(ctx, v.ID, first.ID, generator.CaptionRequest{Topic: "Spring sale"})
	require.NoError(t, err)
	v, err = f.svc.View(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, v.Items, 2)
	assert.Equal(t, again.ID, v.Items[0].ID)

	require.NoError(t, f.svc.DeleteItem(ctx, v.ID, again.ID))
	assert.ErrorIs(t, f.svc.DeleteItem(ctx, v.ID, again.ID), appErrors.ErrNotFound)

	summary, err := f.usage.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, summary[generator.UsageCaption])
}

func TestScreen_ContentLabVideoNeedsUpload(t *testing.T) {
	f := newScreenFixture(t)
	ctx := userCtx("alice")
	v, err := f.svc.Open(ctx, "content-lab")
	require.NoError(t, err)

	_, err = f.svc.EditVideo(ctx, v.ID)
	var ve *appErrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Please upload a video file first", ve.Message)

	assets := &service.AssetService{AssetRepo: f.assets}
	_, err = assets.RegisterAsset(ctx, service.AssetInput{Title: "clip", FileURL: "s3://clip.mp4", FileType: model.AssetTypeVideo})
	require.NoError(t, err)

	item, err := f.svc.EditVideo(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GeneratedVideo, item.Kind)

	poster, err := f.svc.GeneratePoster(ctx, v.ID, generator.ProductRequest{Name: "Lamp"})
	require.NoError(t, err)
	assert.Equal(t, "Lamp Poster", poster.Title)

	_, err = f.svc.GenerateProductCaption(ctx, v.ID, generator.ProductRequest{Name: "Lamp"})
	require.NoError(t, err)
}

func TestScreen_AssistantAndClose(t *testing.T) {
	f := newScreenFixture(t)
	ctx := userCtx("alice")
	v, err := f.svc.Open(ctx, "assistant")
	require.NoError(t, err)
	require.Len(t, v.Messages, 1)
	assert.True(t, v.Messages[0].IsBot)

	reply, err := f.svc.Send(ctx, v.ID, "Any caption ideas?")
	require.NoError(t, err)
	assert.True(t, reply.IsBot)

	v, err = f.svc.View(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, v.Messages, 3)

	require.NoError(t, f.svc.Close(ctx, v.ID))
	_, err = f.svc.Send(ctx, v.ID, "hello?")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestOverview(t *testing.T) {
	campaigns := &MockCampaignRepo{campaigns: []*model.Campaign{
		{ID: "1", UserID: "alice", Status: model.CampaignStatusActive},
		{ID: "2", UserID: "alice", Status: model.CampaignStatusDraft},
		{ID: "3", UserID: "alice", Status: model.CampaignStatusActive},
		{ID: "4", UserID: "bob", Status: model.CampaignStatusActive},
	}}
	posts := &MockPostRepo{posts: []*model.SocialPost{{ID: "p", UserID: "alice", Status: model.PostStatusPublished}}}
	usage := &MockUsageRepo{records: []*model.AIUsage{{UserID: "alice", UsageType: generator.UsagePoster}}}
	svc := &service.OverviewService{CampaignRepo: campaigns, PostRepo: posts, UsageRepo: usage}

	o, err := svc.Overview(userCtx("alice"))
	require.NoError(t, err)
	assert.Equal(t, 3, o.Campaigns)
	assert.Equal(t, 2, o.ActiveCampaigns)
	assert.Equal(t, 1, o.Posts)
	assert.Equal(t, 1, o.Generations[generator.UsagePoster])
}

func TestUsageRecorder_LogsFailures(t *testing.T) {
	usage := &MockUsageRepo{err: errors.New("insert failed")}
	record := service.UsageRecorder(usage, nil)
	assert.NotPanics(t, func() { record(userCtx("alice"), "alice", generator.UsageCaption, 12) })
	assert.Empty(t, usage.records)
}
