package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TopicPostPublish carries PublishJob payloads.
const TopicPostPublish = "post_publish"

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue runs every published job on its own goroutine, retrying a
// failed handler up to MaxRetries times with linear backoff.
type InMemoryQueue struct {
	MaxRetries int
	Backoff    time.Duration
	Logger     *zap.Logger

	mu       sync.Mutex
	handlers map[string][]func(payload any) error
	wg       sync.WaitGroup
	closed   bool
}

// NewInMemoryQueue creates a queue with no retries; a failed job is final.
func NewInMemoryQueue(logger *zap.Logger) *InMemoryQueue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryQueue{
		Backoff:  500 * time.Millisecond,
		Logger:   logger,
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish hands payload to every subscriber of topic.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return fmt.Errorf("queue closed")
	}
	handlers := q.handlers[topic]
	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{Payload: payload, MaxRetries: q.MaxRetries}
	for _, handler := range handlers {
		q.wg.Add(1)
		go q.processJob(topic, handler, job)
	}
	return nil
}

func (q *InMemoryQueue) processJob(topic string, handler func(payload any) error, job JobPayload) {
	defer q.wg.Done()
	for {
		err := handler(job.Payload)
		if err == nil {
			q.Logger.Debug("job processed", zap.String("topic", topic), zap.Any("payload", job.Payload))
			return
		}

		job.RetryCount++
		if job.RetryCount > job.MaxRetries {
			q.Logger.Warn("job permanently failed",
				zap.String("topic", topic),
				zap.Int("attempts", job.RetryCount),
				zap.Any("payload", job.Payload),
				zap.Error(err),
			)
			return
		}
		q.Logger.Info("job failed, retrying",
			zap.String("topic", topic),
			zap.Int("attempt", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
			zap.Error(err),
		)
		time.Sleep(time.Duration(job.RetryCount) * q.Backoff)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// Close rejects further publishes and waits for in-flight jobs or ctx.
func (q *InMemoryQueue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
