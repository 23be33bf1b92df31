// internal/screen/manager.go
package screen

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/fetcher"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/ids"
	"github.com/unclebandit/creatorhub-backend/internal/metrics"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/templates"
)

// UsageRecorder is told about every successful generation on any screen.
type UsageRecorder func(ctx context.Context, ownerID, usageType string, tokens int)

type Options struct {
	IdleTTL time.Duration
	Timeout time.Duration
	Delays  generator.Delays
	Backend generator.Backend
	Tables  *templates.Set
	Usage   UsageRecorder
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Clock   func() time.Time
}

// Manager keeps every open screen and reaps idle ones.
type Manager struct {
	opts Options

	mu      sync.Mutex
	screens map[string]*Screen
}

func NewManager(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Tables == nil {
		opts.Tables = templates.Default()
	}
	if opts.Backend == nil {
		opts.Backend = generator.NewMockBackend(opts.Tables)
	}
	return &Manager{opts: opts, screens: make(map[string]*Screen)}
}

// Open creates a screen of kind for ownerID. Data screens come back empty;
// the caller performs the mount fetch.
func (m *Manager) Open(ownerID string, kind Kind) (*Screen, error) {
	if ownerID == "" {
		return nil, appErrors.ErrUnauthenticated
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Screen{
		ID:       ids.New(),
		Kind:     kind,
		OwnerID:  ownerID,
		OpenedAt: m.opts.Clock(),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.touch(s.OpenedAt)
	m.populate(s)

	m.mu.Lock()
	m.screens[s.ID] = s
	m.mu.Unlock()

	m.opts.Metrics.ScreenOpened()
	m.opts.Logger.Debug("screen opened",
		zap.String("screen_id", s.ID),
		zap.String("kind", string(kind)),
		zap.String("owner_id", ownerID),
	)
	return s, nil
}

func (m *Manager) populate(s *Screen) {
	stale := func(collection string) fetcher.Option {
		return fetcher.WithOnStale(func() {
			m.opts.Metrics.StaleFetch(collection)
			m.opts.Logger.Debug("stale fetch discarded",
				zap.String("screen_id", s.ID), zap.String("collection", collection))
		})
	}
	usage := func(ctx context.Context, usageType string, tokens int) {
		m.opts.Metrics.Generation(usageType, "ok")
		if m.opts.Usage != nil {
			m.opts.Usage(ctx, s.OwnerID, usageType, tokens)
		}
	}

	switch s.Kind {
	case KindCreatorDiscovery:
		s.Creators = fetcher.New[*model.Creator](stale("creators"))
		s.Campaigns = fetcher.New[*model.Campaign](stale("campaigns"))
	case KindCampaigns:
		s.Campaigns = fetcher.New[*model.Campaign](stale("campaigns"))
	case KindAdmin:
		s.Users = fetcher.New[*model.Profile](stale("profiles"))
		s.Testimonials = fetcher.New[*model.Testimonial](stale("testimonials"))
	case KindCaptionWriter, KindContentLab:
		s.Studio = generator.NewStudio(m.opts.Backend, m.opts.Delays, m.opts.Timeout)
		s.Studio.OnGenerated = usage
	case KindAssistant:
		s.Chat = generator.NewConversation(m.opts.Backend, m.opts.Tables.Assistant.Greeting,
			m.opts.Delays.Assistant, m.opts.Timeout)
		s.Chat.OnGenerated = usage
	}
}

// Get returns the caller's screen and marks it as used. A screen owned by
// someone else is reported as not found.
func (m *Manager) Get(ownerID, id string) (*Screen, error) {
	m.mu.Lock()
	s, ok := m.screens[id]
	m.mu.Unlock()
	if !ok || s.OwnerID != ownerID {
		return nil, appErrors.NewNotFound("screen", id)
	}
	s.touch(m.opts.Clock())
	return s, nil
}

// Close tears the screen down, cancelling every pending delay on it.
func (m *Manager) Close(ownerID, id string) error {
	m.mu.Lock()
	s, ok := m.screens[id]
	if !ok || s.OwnerID != ownerID {
		m.mu.Unlock()
		return appErrors.NewNotFound("screen", id)
	}
	delete(m.screens, id)
	m.mu.Unlock()

	s.close()
	m.opts.Metrics.ScreenClosed(false)
	m.opts.Logger.Debug("screen closed", zap.String("screen_id", id))
	return nil
}

// Reap closes screens not used for longer than the idle TTL and returns how
// many it closed.
func (m *Manager) Reap(now time.Time) int {
	if m.opts.IdleTTL <= 0 {
		return 0
	}
	var expired []*Screen
	m.mu.Lock()
	for id, s := range m.screens {
		if now.Sub(s.LastSeen()) > m.opts.IdleTTL {
			expired = append(expired, s)
			delete(m.screens, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
		m.opts.Metrics.ScreenClosed(true)
		m.opts.Logger.Info("idle screen reaped",
			zap.String("screen_id", s.ID),
			zap.String("kind", string(s.Kind)),
			zap.Time("last_seen", s.LastSeen()),
		)
	}
	return len(expired)
}

// Run reaps idle screens until ctx is done, then closes everything left.
func (m *Manager) Run(ctx context.Context) {
	interval := m.opts.IdleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer m.CloseAll()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap(m.opts.Clock())
		}
	}
}

func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.screens
	m.screens = make(map[string]*Screen)
	m.mu.Unlock()

	for _, s := range all {
		s.close()
		m.opts.Metrics.ScreenClosed(false)
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.screens)
}
