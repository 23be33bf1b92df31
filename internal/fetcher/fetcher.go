// internal/fetcher/fetcher.go
package fetcher

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStale is returned by Fetch when a newer fetch was issued while this one
// was in flight. Its result was discarded.
var ErrStale = errors.New("fetch superseded by a newer request")

// LoadFunc performs the single round trip for one fetch.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

type options struct {
	onStale func()
}

type Option func(*options)

// WithOnStale registers a hook run whenever a response is discarded.
func WithOnStale(fn func()) Option {
	return func(o *options) { o.onStale = fn }
}

// Fetcher holds the last applied collection of one screen. Every call to
// Fetch takes a new token; only the response carrying the latest token is
// applied.
type Fetcher[T any] struct {
	mu        sync.Mutex
	issued    uint64
	items     []T
	loaded    bool
	fetchedAt time.Time
	opts      options
}

func New[T any](opts ...Option) *Fetcher[T] {
	f := &Fetcher[T]{items: []T{}}
	for _, opt := range opts {
		opt(&f.opts)
	}
	return f
}

// Fetch runs load and applies its result if no newer fetch was issued in the
// meantime. On error the previously applied list is kept as is.
func (f *Fetcher[T]) Fetch(ctx context.Context, load LoadFunc[T]) ([]T, error) {
	f.mu.Lock()
	f.issued++
	token := f.issued
	f.mu.Unlock()

	items, err := load(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if token != f.issued {
		if f.opts.onStale != nil {
			f.opts.onStale()
		}
		return nil, ErrStale
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	f.items = items
	f.loaded = true
	f.fetchedAt = time.Now()
	return clone(items), nil
}

// Items returns a copy of the applied list.
func (f *Fetcher[T]) Items() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clone(f.items)
}

// Loaded reports whether any fetch has been applied yet.
func (f *Fetcher[T]) Loaded() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loaded
}

func (f *Fetcher[T]) FetchedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchedAt
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
