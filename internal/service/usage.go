// internal/service/usage.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/model"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/screen"
)

// UsageRecorder stores one ai_usage row per successful generation. A failed
// write is logged and never fails the generation itself.
func UsageRecorder(repo repository.UsageRepositoryInterface, logger *zap.Logger) screen.UsageRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, ownerID, usageType string, tokens int) {
		u := &model.AIUsage{UserID: ownerID, UsageType: usageType, TokensUsed: tokens}
		if err := repo.Record(context.WithoutCancel(ctx), u); err != nil {
			logger.Warn("failed to record ai usage",
				zap.String("owner_id", ownerID),
				zap.String("usage_type", usageType),
				zap.Error(err),
			)
		}
	}
}
