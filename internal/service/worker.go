// internal/service/worker.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
	"github.com/unclebandit/creatorhub-backend/internal/metrics"
	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/queue"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
)

// Worker simulates publishing a post: it waits Delay, then marks the post
// published, or failed when a target platform has no active account.
type Worker struct {
	PostRepo    repository.PostStatusStore
	AccountRepo repository.SocialAccountRepositoryInterface
	Delay       time.Duration
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

// Constructor
func NewWorker(posts repository.PostStatusStore, accounts repository.SocialAccountRepositoryInterface, delay time.Duration, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{PostRepo: posts, AccountRepo: accounts, Delay: delay, Logger: logger, Now: time.Now}
}

// Handle processes one publish job. Missing or already settled posts are
// skipped without error so the queue does not retry them.
func (w *Worker) Handle(ctx context.Context, job queue.PublishJob) error {
	timer := time.NewTimer(w.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	post, err := w.PostRepo.GetByID(ctx, job.PostID)
	if errors.Is(err, appErrors.ErrNotFound) {
		w.Logger.Warn("post vanished before publishing", zap.String("post_id", job.PostID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("load post %s: %w", job.PostID, err)
	}
	if post.Status != model.PostStatusScheduled {
		w.Logger.Info("post already settled", zap.String("post_id", post.ID), zap.String("status", post.Status))
		return nil
	}
	if post.ScheduledFor != nil && post.ScheduledFor.After(w.now()) {
		w.Logger.Info("post scheduled for later, leaving as is", zap.String("post_id", post.ID))
		return nil
	}

	accounts, err := w.AccountRepo.ListByOwner(ctx, post.UserID)
	if err != nil {
		return fmt.Errorf("load accounts for %s: %w", post.UserID, err)
	}
	status, lastError := model.PostStatusPublished, ""
	if missing := missingPlatforms(post.Platforms, accounts); len(missing) > 0 {
		status = model.PostStatusFailed
		lastError = "no connected account for " + strings.Join(missing, ", ")
	}

	if err := w.PostRepo.UpdateStatus(ctx, post.ID, status, lastError); err != nil {
		return fmt.Errorf("update post %s: %w", post.ID, err)
	}
	w.Metrics.Publish(status)
	w.Logger.Info("post processed",
		zap.String("post_id", post.ID),
		zap.String("status", status),
		zap.Strings("platforms", post.Platforms),
	)
	return nil
}

func (w *Worker) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

func missingPlatforms(platforms []string, accounts []*model.SocialAccount) []string {
	active := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			active[a.Platform] = true
		}
	}
	var missing []string
	for _, p := range platforms {
		if !active[p] {
			missing = append(missing, p)
		}
	}
	sort.Strings(missing)
	return missing
}
