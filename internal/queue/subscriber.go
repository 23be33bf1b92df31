package queue

import (
	"context"

	"go.uber.org/zap"
)

// StartPostPublishSubscriber routes post_publish jobs to handle. Payloads
// that cannot be decoded are dropped without retry.
func StartPostPublishSubscriber(ctx context.Context, q Queue, handle func(context.Context, PublishJob) error, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	return q.Subscribe(TopicPostPublish, func(payload any) error {
		job, err := DecodePublishJob(payload)
		if err != nil {
			logger.Warn("invalid publish job", zap.Error(err))
			return nil
		}
		logger.Info("processing publish job", zap.String("post_id", job.PostID))
		return handle(ctx, job)
	})
}
