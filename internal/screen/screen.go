// internal/screen/screen.go
package screen

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/fetcher"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/model"
)

type Kind string

const (
	KindCreatorDiscovery Kind = "creator-discovery"
	KindCampaigns        Kind = "campaigns"
	KindCaptionWriter    Kind = "caption-writer"
	KindContentLab       Kind = "content-lab"
	KindAssistant        Kind = "assistant"
	KindAdmin            Kind = "admin"
)

var kinds = []Kind{
	KindCreatorDiscovery, KindCampaigns, KindCaptionWriter,
	KindContentLab, KindAssistant, KindAdmin,
}

func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", appErrors.NewValidation("kind", fmt.Sprintf("unknown screen kind %q", s))
}

// Fetches reports whether opening this kind of screen loads remote data.
func (k Kind) Fetches() bool {
	switch k {
	case KindCreatorDiscovery, KindCampaigns, KindAdmin:
		return true
	}
	return false
}

// Screen is the transient state of one open dashboard section. Everything
// it holds is dropped on Close.
type Screen struct {
	ID       string
	Kind     Kind
	OwnerID  string
	OpenedAt time.Time

	// Data screens.
	Creators     *fetcher.Fetcher[*model.Creator]
	Campaigns    *fetcher.Fetcher[*model.Campaign]
	Users        *fetcher.Fetcher[*model.Profile]
	Testimonials *fetcher.Fetcher[*model.Testimonial]

	// Generation screens.
	Studio *generator.Studio
	Chat   *generator.Conversation

	ctx      context.Context
	cancel   context.CancelFunc
	lastSeen atomic.Int64
}

// Bind derives a context that ends when either parent or the screen ends.
// Every delay and fetch run on behalf of the screen uses it.
func (s *Screen) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (s *Screen) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Screen) Closed() bool { return s.ctx.Err() != nil }

func (s *Screen) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }

func (s *Screen) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Screen) close() { s.cancel() }
