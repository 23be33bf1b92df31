// internal/generator/runner.go
package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
)

type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateFailed     State = "failed"
)

// Runner serialises generations on one screen: Idle -> Generating -> Idle,
// or Failed when the backend errors or the timeout expires. Failed is left
// by the next generation.
type Runner struct {
	Timeout time.Duration

	mu    sync.Mutex
	state State
	err   error
}

func NewRunner(timeout time.Duration) *Runner {
	return &Runner{Timeout: timeout, state: StateIdle}
}

// State returns the current state and, when Failed, the failure.
func (r *Runner) State() (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == "" {
		return StateIdle, nil
	}
	return r.state, r.err
}

func (r *Runner) acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateGenerating {
		return appErrors.ErrBusy
	}
	r.state = StateGenerating
	r.err = nil
	return nil
}

func (r *Runner) release(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		r.state = StateIdle
		r.err = nil
	default:
		r.state = StateFailed
		r.err = err
	}
}

// Run waits out delay and then calls gen, both under ctx and the runner's
// timeout. A second Run while one is in flight fails with ErrBusy.
func Run[T any](ctx context.Context, r *Runner, delay time.Duration, gen func(context.Context) (T, error)) (T, error) {
	if err := r.acquire(); err != nil {
		var zero T
		return zero, err
	}
	return run(ctx, r, delay, gen)
}

// run expects the runner to be acquired already.
func run[T any](ctx context.Context, r *Runner, delay time.Duration, gen func(context.Context) (T, error)) (out T, err error) {
	defer func() { r.release(err) }()

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if err = sleep(ctx, delay); err == nil {
		out, err = gen(ctx)
	}
	if err != nil {
		var zero T
		return zero, r.classify(err)
	}
	return out, nil
}

func (r *Runner) classify(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("generation cancelled: %w", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: timed out after %s", appErrors.ErrGenerationFailed, r.Timeout)
	case errors.Is(err, appErrors.ErrGenerationFailed):
		return err
	default:
		return fmt.Errorf("%w: %w", appErrors.ErrGenerationFailed, err)
	}
}

// sleep blocks for d or until ctx is done. The timer is always released.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
