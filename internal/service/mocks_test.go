package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

// Mock repositories. Each keeps rows in memory and honours owner scoping
// the way the Postgres ones do.

func userCtx(id string) context.Context {
	return auth.ContextWithUser(context.Background(), id, id+"@example.com")
}

type seq struct {
	mu sync.Mutex
	n  int
}

func (s *seq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s%d", prefix, s.n)
}

type MockCampaignRepo struct {
	seq
	mu        sync.Mutex
	campaigns []*model.Campaign
	listErr   error
}

func (m *MockCampaignRepo) ListByOwner(ctx context.Context, ownerID string, _ repository.Order) ([]*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []*model.Campaign{}
	for _, c := range m.campaigns {
		if c.UserID == ownerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, ownerID, id string) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.ID == id && c.UserID == ownerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, appErrors.NewCampaignNotFound(id)
}

func (m *MockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	c.ID = m.next("camp")
	c.CreatedAt = time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.campaigns = append([]*model.Campaign{&cp}, m.campaigns...)
	return nil
}

func (m *MockCampaignRepo) Update(ctx context.Context, c *model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.campaigns {
		if existing.ID == c.ID && existing.UserID == c.UserID {
			cp := *c
			m.campaigns[i] = &cp
			return nil
		}
	}
	return appErrors.NewCampaignNotFound(c.ID)
}

func (m *MockCampaignRepo) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.campaigns {
		if c.ID == id && c.UserID == ownerID {
			m.campaigns = append(m.campaigns[:i], m.campaigns[i+1:]...)
			return nil
		}
	}
	return appErrors.NewCampaignNotFound(id)
}

func (m *MockCampaignRepo) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, c := range m.campaigns {
		if c.UserID == ownerID {
			out[c.Status]++
		}
	}
	return out, nil
}

type MockCampaignCreatorRepo struct {
	seq
	Campaigns *MockCampaignRepo
	rows      []*model.CampaignCreator
}

func (m *MockCampaignCreatorRepo) Attach(ctx context.Context, ownerID string, cc *model.CampaignCreator) error {
	if _, err := m.Campaigns.GetByID(ctx, ownerID, cc.CampaignID); err != nil {
		return err
	}
	cc.ID = m.next("cc")
	m.rows = append(m.rows, cc)
	return nil
}

func (m *MockCampaignCreatorRepo) ListByCampaign(ctx context.Context, ownerID, campaignID string) ([]*model.CampaignCreator, error) {
	if _, err := m.Campaigns.GetByID(ctx, ownerID, campaignID); err != nil {
		return nil, err
	}
	out := []*model.CampaignCreator{}
	for _, cc := range m.rows {
		if cc.CampaignID == campaignID {
			out = append(out, cc)
		}
	}
	return out, nil
}

func (m *MockCampaignCreatorRepo) Detach(ctx context.Context, ownerID, id string) error {
	for i, cc := range m.rows {
		if cc.ID != id {
			continue
		}
		if _, err := m.Campaigns.GetByID(ctx, ownerID, cc.CampaignID); err != nil {
			break
		}
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
		return nil
	}
	return appErrors.NewNotFound("campaign creator", id)
}

type MockCreatorRepo struct {
	creators []*model.Creator
	err      error
}

func (m *MockCreatorRepo) List(ctx context.Context, _ repository.Order) ([]*model.Creator, error) {
	if m.err != nil {
		return nil, m.err
	}
	return append([]*model.Creator(nil), m.creators...), nil
}

func (m *MockCreatorRepo) GetByID(ctx context.Context, id string) (*model.Creator, error) {
	for _, c := range m.creators {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, appErrors.NewNotFound("creator", id)
}

type MockProfileRepo struct {
	seq
	mu        sync.Mutex
	profiles  map[string]*model.Profile
	createErr error
}

func NewMockProfileRepo(profiles ...*model.Profile) *MockProfileRepo {
	m := &MockProfileRepo{profiles: map[string]*model.Profile{}}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	if m.createErr != nil {
		return m.createErr
	}
	p.ID = m.next("prof")
	if p.Role == "" {
		p.Role = model.RoleUser
	}
	if p.SubscriptionTier == "" {
		p.SubscriptionTier = model.TierFree
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *MockProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.UserID]; !ok {
		return appErrors.NewNotFound("profile", p.ID)
	}
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *MockProfileRepo) ListAll(ctx context.Context, _ repository.Order) ([]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Profile{}
	for _, p := range m.profiles {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type MockUserRepo struct {
	seq
	users map[string]*model.User
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	if m.users == nil {
		m.users = map[string]*model.User{}
	}
	if _, ok := m.users[u.Email]; ok {
		return appErrors.ErrConflict
	}
	u.ID = m.next("user")
	m.users[u.Email] = u
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, appErrors.NewNotFound("user", email)
	}
	return u, nil
}

type MockTestimonialRepo struct {
	seq
	mu   sync.Mutex
	rows []*model.Testimonial
}

func (m *MockTestimonialRepo) List(ctx context.Context, _ repository.Order) ([]*model.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Testimonial, 0, len(m.rows))
	for _, t := range m.rows {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MockTestimonialRepo) ListApproved(ctx context.Context) ([]*model.Testimonial, error) {
	all, _ := m.List(ctx, repository.Order{})
	out := []*model.Testimonial{}
	for _, t := range all {
		if t.IsApproved {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	t.ID = m.next("t")
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *MockTestimonialRepo) Approve(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.ID == id {
			t.IsApproved = true
			return nil
		}
	}
	return appErrors.NewNotFound("testimonial", id)
}

func (m *MockTestimonialRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.rows {
		if t.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return appErrors.NewNotFound("testimonial", id)
}

type MockPostRepo struct {
	seq
	mu    sync.Mutex
	posts []*model.SocialPost
}

func (m *MockPostRepo) ListByOwner(ctx context.Context, ownerID string, _ repository.Order) ([]*model.SocialPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.SocialPost{}
	for _, p := range m.posts {
		if p.UserID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPostRepo) Create(ctx context.Context, p *model.SocialPost) error {
	p.ID = m.next("post")
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.posts = append(m.posts, &cp)
	return nil
}

func (m *MockPostRepo) Delete(ctx context.Context, ownerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID == id && p.UserID == ownerID {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return appErrors.NewNotFound("post", id)
}

func (m *MockPostRepo) CountByStatus(ctx context.Context, ownerID string) (map[string]int, error) {
	posts, _ := m.ListByOwner(ctx, ownerID, repository.Order{})
	out := map[string]int{}
	for _, p := range posts {
		out[p.Status]++
	}
	return out, nil
}

func (m *MockPostRepo) GetByID(ctx context.Context, id string) (*model.SocialPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, appErrors.NewNotFound("post", id)
}

func (m *MockPostRepo) UpdateStatus(ctx context.Context, id, status, lastError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			p.Status = status
			p.LastError = lastError
			return nil
		}
	}
	return appErrors.NewNotFound("post", id)
}

type MockAccountRepo struct {
	seq
	accounts []*model.SocialAccount
}

func (m *MockAccountRepo) ListByOwner(ctx context.Context, ownerID string) ([]*model.SocialAccount, error) {
	out := []*model.SocialAccount{}
	for _, a := range m.accounts {
		if a.UserID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAccountRepo) Create(ctx context.Context, a *model.SocialAccount) error {
	a.ID = m.next("acct")
	m.accounts = append(m.accounts, a)
	return nil
}

func (m *MockAccountRepo) Delete(ctx context.Context, ownerID, id string) error {
	for i, a := range m.accounts {
		if a.ID == id && a.UserID == ownerID {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return appErrors.NewNotFound("social account", id)
}

type MockAssetRepo struct {
	seq
	assets []*model.ContentAsset
}

func (m *MockAssetRepo) ListByOwner(ctx context.Context, ownerID string, _ repository.Order) ([]*model.ContentAsset, error) {
	out := []*model.ContentAsset{}
	for _, a := range m.assets {
		if a.UserID == ownerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MockAssetRepo) Create(ctx context.Context, a *model.ContentAsset) error {
	a.ID = m.next("asset")
	m.assets = append(m.assets, a)
	return nil
}

func (m *MockAssetRepo) Delete(ctx context.Context, ownerID, id string) error {
	for i, a := range m.assets {
		if a.ID == id && a.UserID == ownerID {
			m.assets = append(m.assets[:i], m.assets[i+1:]...)
			return nil
		}
	}
	return appErrors.NewNotFound("content asset", id)
}

type MockUsageRepo struct {
	mu      sync.Mutex
	records []*model.AIUsage
	err     error
}

func (m *MockUsageRepo) Record(ctx context.Context, u *model.AIUsage) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, u)
	return nil
}

func (m *MockUsageRepo) Summary(ctx context.Context, ownerID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, r := range m.records {
		if r.UserID == ownerID {
			out[r.UsageType]++
		}
	}
	return out, nil
}

type MockQueue struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (q *MockQueue) Publish(topic string, payload any) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.published = append(q.published, payload)
	return nil
}

func (q *MockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }
