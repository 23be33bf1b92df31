package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	"github.com/unclebandit/creatorhub-backend/internal/controller"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/handler"
	"github.com/unclebandit/creatorhub-backend/internal/metrics"
	"github.com/unclebandit/creatorhub-backend/internal/middleware"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/router"
	"github.com/unclebandit/creatorhub-backend/internal/screen"
	"github.com/unclebandit/creatorhub-backend/internal/service"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.Email]; ok {
		return appErrors.ErrConflict
	}
	u.ID = "user-" + u.Email
	f.users[u.Email] = u
	return nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, appErrors.NewNotFound("user", email)
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
}

func (f *fakeProfiles) GetByUserID(_ context.Context, id string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[id], nil
}

func (f *fakeProfiles) Create(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = "profile-" + p.UserID
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfiles) ListAll(context.Context, repository.Order) ([]*model.Profile, error) {
	return nil, nil
}

type fakeCampaigns struct {
	mu   sync.Mutex
	rows []*model.Campaign
}

func (f *fakeCampaigns) ListByOwner(_ context.Context, owner string, _ repository.Order) ([]*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Campaign{}
	for _, c := range f.rows {
		if c.UserID == owner {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampaigns) GetByID(_ context.Context, owner, id string) (*model.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID == id && c.UserID == owner {
			return c, nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(id)
}

func (f *fakeCampaigns) Create(_ context.Context, c *model.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = "camp-" + c.Title
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCampaigns) Update(context.Context, *model.Campaign) error { return nil }

func (f *fakeCampaigns) Delete(ctx context.Context, owner, id string) error {
	_, err := f.GetByID(ctx, owner, id)
	return err
}

func (f *fakeCampaigns) CountByStatus(context.Context, string) (map[string]int, error) {
	return map[string]int{}, nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	tokens := auth.NewTokens("router-test-secret", time.Hour)
	profiles := &fakeProfiles{profiles: map[string]*model.Profile{}}
	campaigns := &fakeCampaigns{}
	rs := controller.Responder{Logger: logger}

	campaignSvc := &service.CampaignService{CampaignRepo: campaigns}
	profileSvc := &service.ProfileService{ProfileRepo: profiles}
	adminSvc := &service.AdminService{ProfileRepo: profiles}

	manager := screen.NewManager(screen.Options{
		Timeout: time.Second,
		Delays:  generator.Delays{Caption: time.Millisecond},
	})
	t.Cleanup(manager.CloseAll)

	h := router.New(router.Deps{
		Logger:       logger,
		Metrics:      metrics.New(),
		Tokens:       tokens,
		RateLimiter:  middleware.NewRateLimiter(1000, 1000),
		MaxBodyBytes: 1 << 16,
		Auth: &controller.AuthController{Responder: rs, AuthService: &service.AuthService{
			Users: &fakeUsers{users: map[string]*model.User{}}, Profiles: profiles, Tokens: tokens,
		}},
		Profile:   &controller.ProfileController{Responder: rs, ProfileService: profileSvc},
		Campaigns: &controller.CampaignController{Responder: rs, CampaignService: campaignSvc},
		Creators:  &controller.CreatorController{Responder: rs},
		Posts:     &controller.PostController{Responder: rs},
		Admin:     &controller.AdminController{Responder: rs, AdminService: adminSvc},
		Screens: handler.NewScreenHandler(&service.ScreenService{
			Manager:   manager,
			Campaigns: campaignSvc,
			Admin:     adminSvc,
		}, rs),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func signUp(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()
	code, body := do(t, srv, http.MethodPost, "/auth/signup", "", `{"email":"`+email+`","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, code)
	return body["token"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t)
	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	srv := newServer(t)
	code, _ := do(t, srv, http.MethodGet, "/campaigns", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = do(t, srv, http.MethodGet, "/campaigns", "forged", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCampaignFlow(t *testing.T) {
	srv := newServer(t)
	alice := signUp(t, srv, "alice@example.com")
	bob := signUp(t, srv, "bob@example.com")

	code, body := do(t, srv, http.MethodPost, "/campaigns", alice, `{"title":"","budget":"10"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "title", body["field"])

	code, body = do(t, srv, http.MethodPost, "/campaigns", alice, `{"title":"Launch","budget":"99.5"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "draft", body["status"])
	id := body["id"].(string)

	code, _ = do(t, srv, http.MethodGet, "/campaigns/"+id, alice, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, srv, http.MethodGet, "/campaigns/"+id, bob, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = do(t, srv, http.MethodGet, "/campaigns", alice, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"], 1)

	code, _ = do(t, srv, http.MethodPost, "/campaigns", alice, `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestProfileAndUpgrade(t *testing.T) {
	srv := newServer(t)
	token := signUp(t, srv, "carol@example.com")

	code, body := do(t, srv, http.MethodGet, "/profile", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "carol", body["username"])

	code, _ = do(t, srv, http.MethodPost, "/profile/upgrade", token, `{"tier":"pro"}`)
	assert.Equal(t, http.StatusNotImplemented, code)

	code, _ = do(t, srv, http.MethodGet, "/admin/users", token, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestScreenCaptionFlow(t *testing.T) {
	srv := newServer(t)
	token := signUp(t, srv, "dana@example.com")

	code, body := do(t, srv, http.MethodPost, "/screens", token, `{"kind":"caption-writer"}`)
	require.Equal(t, http.StatusCreated, code)
	id := body["id"].(string)

	code, body = do(t, srv, http.MethodPost, "/screens/"+id+"/captions", token, `{"topic":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please enter a topic for your caption", body["error"])

	code, body = do(t, srv, http.MethodPost, "/screens/"+id+"/captions", token, `{"topic":"Launch","platform":"linkedin"}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "caption", body["kind"])

	code, body = do(t, srv, http.MethodGet, "/screens/"+id, token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 1)

	other := signUp(t, srv, "eve@example.com")
	code, _ = do(t, srv, http.MethodGet, "/screens/"+id, other, "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodDelete, "/screens/"+id, token, "")
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = do(t, srv, http.MethodGet, "/screens/"+id, token, "")
	assert.Equal(t, http.StatusNotFound, code)
}
