// internal/generator/studio.go
package generator

import (
	"context"
	"strings"
	"time"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/model"
)

// Usage types recorded per successful generation.
const (
	UsageCaption   = "caption"
	UsagePoster    = "poster"
	UsageVideo     = "video"
	UsageAssistant = "assistant"
)

// UsageFunc is notified after every successful generation.
type UsageFunc func(ctx context.Context, usageType string, tokens int)

type Delays struct {
	Caption   time.Duration
	Poster    time.Duration
	Video     time.Duration
	Assistant time.Duration
}

// Studio is the generation state of one caption writer or content lab
// screen.
type Studio struct {
	Backend     Backend
	Delays      Delays
	Runner      *Runner
	Feed        *Feed
	OnGenerated UsageFunc
}

func NewStudio(backend Backend, delays Delays, timeout time.Duration, seed ...model.GeneratedItem) *Studio {
	return &Studio{
		Backend: backend,
		Delays:  delays,
		Runner:  NewRunner(timeout),
		Feed:    NewFeed(seed...),
	}
}

func (s *Studio) GenerateCaption(ctx context.Context, req CaptionRequest) (model.GeneratedItem, error) {
	if err := req.Validate(); err != nil {
		return model.GeneratedItem{}, err
	}
	return s.generate(ctx, s.Delays.Caption, UsageCaption, func(ctx context.Context) (model.GeneratedItem, error) {
		return s.Backend.Caption(ctx, req)
	})
}

// RegenerateCaption drops item id and generates a replacement from req. The
// old item is gone even if the new generation fails.
func (s *Studio) RegenerateCaption(ctx context.Context, id string, req CaptionRequest) (model.GeneratedItem, error) {
	if err := req.Validate(); err != nil {
		return model.GeneratedItem{}, err
	}
	if err := s.Runner.acquire(); err != nil {
		return model.GeneratedItem{}, err
	}
	if !s.Feed.Remove(id) {
		s.Runner.release(nil)
		return model.GeneratedItem{}, appErrors.NewNotFound("generated item", id)
	}
	item, err := run(ctx, s.Runner, s.Delays.Caption, func(ctx context.Context) (model.GeneratedItem, error) {
		return s.Backend.Caption(ctx, req)
	})
	if err != nil {
		return model.GeneratedItem{}, err
	}
	return s.keep(ctx, UsageCaption, item), nil
}

func (s *Studio) GeneratePoster(ctx context.Context, req ProductRequest) (model.GeneratedItem, error) {
	if err := req.Validate(); err != nil {
		return model.GeneratedItem{}, err
	}
	return s.generate(ctx, s.Delays.Poster, UsagePoster, func(ctx context.Context) (model.GeneratedItem, error) {
		return s.Backend.Poster(ctx, req)
	})
}

func (s *Studio) GenerateProductCaption(ctx context.Context, req ProductRequest) (model.GeneratedItem, error) {
	if err := req.Validate(); err != nil {
		return model.GeneratedItem{}, err
	}
	return s.generate(ctx, s.Delays.Caption, UsageCaption, func(ctx context.Context) (model.GeneratedItem, error) {
		return s.Backend.ProductCaption(ctx, req)
	})
}

func (s *Studio) EditVideo(ctx context.Context, assets []*model.ContentAsset) (model.GeneratedItem, error) {
	if err := ValidateVideos(assets); err != nil {
		return model.GeneratedItem{}, err
	}
	return s.generate(ctx, s.Delays.Video, UsageVideo, func(ctx context.Context) (model.GeneratedItem, error) {
		return s.Backend.VideoEdit(ctx, assets)
	})
}

// Delete removes a generated item from the feed.
func (s *Studio) Delete(id string) error {
	if !s.Feed.Remove(id) {
		return appErrors.NewNotFound("generated item", id)
	}
	return nil
}

func (s *Studio) generate(ctx context.Context, delay time.Duration, usage string, gen func(context.Context) (model.GeneratedItem, error)) (model.GeneratedItem, error) {
	item, err := Run(ctx, s.Runner, delay, gen)
	if err != nil {
		return model.GeneratedItem{}, err
	}
	return s.keep(ctx, usage, item), nil
}

func (s *Studio) keep(ctx context.Context, usage string, item model.GeneratedItem) model.GeneratedItem {
	item = s.Feed.Prepend(item)
	if s.OnGenerated != nil {
		s.OnGenerated(ctx, usage, ApproxTokens(item.Content))
	}
	return item
}

// ApproxTokens estimates a token count at four tokens per three words.
func ApproxTokens(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return (words*4 + 2) / 3
}
