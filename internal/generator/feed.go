// internal/generator/feed.go
package generator

import (
	"sync"
	"time"

	"github.com/unclebandit/creatorhub-backend/internal/ids"
	"github.com/unclebandit/creatorhub-backend/internal/model"
)

// Feed is a screen's most-recent-first list of generated items. It is
// unbounded and lives only as long as the screen.
type Feed struct {
	mu    sync.Mutex
	items []model.GeneratedItem
}

// NewFeed seeds the feed with items, first item on top.
func NewFeed(seed ...model.GeneratedItem) *Feed {
	f := &Feed{}
	for i := len(seed) - 1; i >= 0; i-- {
		f.Prepend(seed[i])
	}
	return f
}

// Prepend puts item on top, assigning ID and CreatedAt when unset.
func (f *Feed) Prepend(item model.GeneratedItem) model.GeneratedItem {
	if item.ID == "" {
		item.ID = ids.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]model.GeneratedItem{item}, f.items...)
	return item
}

// Remove deletes the item with id and reports whether it existed.
func (f *Feed) Remove(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Feed) Get(id string) (model.GeneratedItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.GeneratedItem{}, false
}

func (f *Feed) Items() []model.GeneratedItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.GeneratedItem, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
