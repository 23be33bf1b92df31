// internal/generator/backend.go
package generator

import (
	"context"

	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/templates"
)

// Backend produces generated content. Calls may fail and must honour ctx.
type Backend interface {
	Caption(ctx context.Context, r CaptionRequest) (model.GeneratedItem, error)
	Poster(ctx context.Context, r ProductRequest) (model.GeneratedItem, error)
	ProductCaption(ctx context.Context, r ProductRequest) (model.GeneratedItem, error)
	VideoEdit(ctx context.Context, videos []*model.ContentAsset) (model.GeneratedItem, error)
	Reply(ctx context.Context, message string) (string, error)
}

// MockBackend answers from the template tables and never fails unless ctx
// is already done.
type MockBackend struct {
	Tables *templates.Set
}

func NewMockBackend(t *templates.Set) *MockBackend {
	if t == nil {
		t = templates.Default()
	}
	return &MockBackend{Tables: t}
}

func (b *MockBackend) Caption(ctx context.Context, r CaptionRequest) (model.GeneratedItem, error) {
	if err := ctx.Err(); err != nil {
		return model.GeneratedItem{}, err
	}
	return ComposeCaption(b.Tables, r), nil
}

func (b *MockBackend) Poster(ctx context.Context, r ProductRequest) (model.GeneratedItem, error) {
	if err := ctx.Err(); err != nil {
		return model.GeneratedItem{}, err
	}
	return ComposePoster(b.Tables, r), nil
}

func (b *MockBackend) ProductCaption(ctx context.Context, r ProductRequest) (model.GeneratedItem, error) {
	if err := ctx.Err(); err != nil {
		return model.GeneratedItem{}, err
	}
	return ComposeProductCaption(b.Tables, r), nil
}

func (b *MockBackend) VideoEdit(ctx context.Context, _ []*model.ContentAsset) (model.GeneratedItem, error) {
	if err := ctx.Err(); err != nil {
		return model.GeneratedItem{}, err
	}
	return ComposeVideoEdit(b.Tables), nil
}

func (b *MockBackend) Reply(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.Tables.Reply(message), nil
}

var _ Backend = (*MockBackend)(nil)
