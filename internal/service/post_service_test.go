package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/filter"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/queue"
	"github.com/unclebandit/creatorhub-backend/internal/service"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newPostService() (*service.PostService, *MockPostRepo, *MockQueue) {
	posts := &MockPostRepo{}
	q := &MockQueue{}
	return &service.PostService{
		PostRepo:    posts,
		AccountRepo: &MockAccountRepo{},
		Queue:       q,
		Now:         func() time.Time { return fixedNow },
	}, posts, q
}

func TestCompose_PostNowEnqueues(t *testing.T) {
	svc, _, q := newPostService()
	ctx := userCtx("alice")

	p, err := svc.Compose(ctx, service.ComposeInput{
		Content:   "New drop today",
		Platforms: []string{"instagram", "twitter", "instagram"},
		PostNow:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusScheduled, p.Status)
	assert.Equal(t, []string{"instagram", "twitter"}, p.Platforms)
	require.NotNil(t, p.ScheduledFor)
	assert.True(t, p.ScheduledFor.Equal(fixedNow))

	require.Len(t, q.published, 1)
	assert.Equal(t, queue.PublishJob{PostID: p.ID, UserID: "alice"}, q.published[0])
}

func TestCompose_ScheduledIsOnlyStored(t *testing.T) {
	svc, posts, q := newPostService()
	later := fixedNow.Add(48 * time.Hour)

	p, err := svc.Compose(userCtx("alice"), service.ComposeInput{
		Content:      "Teaser",
		Platforms:    []string{"linkedin"},
		ScheduledFor: &later,
	})
	require.NoError(t, err)
	assert.Empty(t, q.published)
	assert.Len(t, posts.posts, 1)
	assert.Equal(t, model.PostStatusScheduled, p.Status)
}

func TestCompose_Validation(t *testing.T) {
	svc, posts, _ := newPostService()
	past := fixedNow.Add(-time.Hour)
	cases := []struct {
		name  string
		in    service.ComposeInput
		field string
	}{
		{"blank content", service.ComposeInput{Content: " ", Platforms: []string{"instagram"}, PostNow: true}, "content"},
		{"no platform", service.ComposeInput{Content: "x", PostNow: true}, "platforms"},
		{"unknown platform", service.ComposeInput{Content: "x", Platforms: []string{"myspace"}, PostNow: true}, "platforms"},
		{"no schedule", service.ComposeInput{Content: "x", Platforms: []string{"instagram"}}, "scheduled_for"},
		{"past schedule", service.ComposeInput{Content: "x", Platforms: []string{"instagram"}, ScheduledFor: &past}, "scheduled_for"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Compose(userCtx("alice"), tc.in)
			var ve *appErrors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
	assert.Empty(t, posts.posts)
}

func TestCompose_QueueDownMarksFailed(t *testing.T) {
	svc, posts, q := newPostService()
	q.err = errors.New("no subscribers")

	p, err := svc.Compose(userCtx("alice"), service.ComposeInput{
		Content: "x", Platforms: []string{"instagram"}, PostNow: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusFailed, p.Status)
	assert.Equal(t, model.PostStatusFailed, posts.posts[0].Status)
}

func TestListPosts_Filtered(t *testing.T) {
	svc, posts, _ := newPostService()
	posts.posts = []*model.SocialPost{
		{ID: "p1", UserID: "alice", Status: model.PostStatusPublished, Platforms: []string{"instagram"}},
		{ID: "p2", UserID: "alice", Status: model.PostStatusFailed, Platforms: []string{"twitter"}},
		{ID: "p3", UserID: "bob", Status: model.PostStatusPublished, Platforms: []string{"instagram"}},
	}
	got, err := svc.ListPosts(userCtx("alice"), filter.PostCriteria{Status: model.PostStatusPublished})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	assert.ErrorIs(t, svc.DeletePost(userCtx("bob"), "p1"), appErrors.ErrNotFound)
	require.NoError(t, svc.DeletePost(userCtx("alice"), "p1"))
}

func TestAccounts(t *testing.T) {
	svc, _, _ := newPostService()
	ctx := userCtx("alice")

	_, err := svc.ConnectAccount(ctx, service.AccountInput{Platform: "friendster", AccountHandle: "@a"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	a, err := svc.ConnectAccount(ctx, service.AccountInput{Platform: "instagram", AccountHandle: " @alice "})
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	assert.Equal(t, "@alice", a.AccountHandle)

	list, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DisconnectAccount(ctx, a.ID))
	list, err = svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
