package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/config"
	"github.com/unclebandit/creatorhub-backend/internal/db"
	"github.com/unclebandit/creatorhub-backend/internal/logging"
	"github.com/unclebandit/creatorhub-backend/internal/metrics"
	"github.com/unclebandit/creatorhub-backend/internal/queue"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required for the standalone worker")
	}
	conn, err := db.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	q, err := queue.DialAMQP(cfg.AMQPURL, logger)
	if err != nil {
		return err
	}
	defer q.Close()

	worker := service.NewWorker(
		&repository.SocialPostRepository{DB: conn},
		&repository.SocialAccountRepository{DB: conn},
		cfg.PublishDelay,
		logger,
	)
	m := metrics.New()
	worker.Metrics = m

	if cfg.WorkerMetricsAddr != "" {
		srv := metricsServer(cfg.WorkerMetricsAddr, m)
		go func() {
			logger.Info("metrics listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := consume(ctx, q, worker, logger); err != nil {
		return err
	}
	logger.Info("worker running, waiting for publish jobs")

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case amqpErr := <-q.NotifyClose():
		return fmt.Errorf("amqp connection closed: %v", amqpErr)
	}
}

// metricsServer exposes the worker's publish counters for scraping.
func metricsServer(addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}

// consume wires the publish simulation to the queue's post_publish topic.
func consume(ctx context.Context, q queue.Queue, worker *service.Worker, logger *zap.Logger) error {
	return queue.StartPostPublishSubscriber(ctx, q, worker.Handle, logger)
}
