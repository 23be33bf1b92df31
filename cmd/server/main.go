// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/creatorhub-backend/internal/auth"
	"github.com/unclebandit/creatorhub-backend/internal/config"
	"github.com/unclebandit/creatorhub-backend/internal/controller"
	"github.com/unclebandit/creatorhub-backend/internal/db"
	"github.com/unclebandit/creatorhub-backend/internal/generator"
	"github.com/unclebandit/creatorhub-backend/internal/handler"
	"github.com/unclebandit/creatorhub-backend/internal/logging"
	"github.com/unclebandit/creatorhub-backend/internal/metrics"
	"github.com/unclebandit/creatorhub-backend/internal/middleware"
	"github.com/unclebandit/creatorhub-backend/internal/queue"
	"github.com/unclebandit/creatorhub-backend/internal/repository"
	"github.com/unclebandit/creatorhub-backend/internal/router"
	"github.com/unclebandit/creatorhub-backend/internal/screen"
	"github.com/unclebandit/creatorhub-backend/internal/service"
	"github.com/unclebandit/creatorhub-backend/internal/templates"
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
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required")
	}

	conn, err := db.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	m := metrics.New()
	tables := templates.Default()
	tokens := auth.NewTokens(cfg.AuthSecret, cfg.TokenTTL)

	campaignRepo := &repository.CampaignRepository{DB: conn}
	campaignCreatorRepo := &repository.CampaignCreatorRepository{DB: conn}
	creatorRepo := &repository.CreatorRepository{DB: conn}
	profileRepo := &repository.ProfileRepository{DB: conn}
	userRepo := &repository.UserRepository{DB: conn}
	testimonialRepo := &repository.TestimonialRepository{DB: conn}
	postRepo := &repository.SocialPostRepository{DB: conn}
	accountRepo := &repository.SocialAccountRepository{DB: conn}
	assetRepo := &repository.ContentAssetRepository{DB: conn}
	usageRepo := &repository.UsageRepository{DB: conn}

	q, closeQueue, err := openQueue(ctx, cfg, conn, logger, m)
	if err != nil {
		return err
	}
	defer closeQueue()

	manager := screen.NewManager(screen.Options{
		IdleTTL: cfg.ScreenIdleTTL,
		Timeout: cfg.GenerationTimeout,
		Delays: generator.Delays{
			Caption:   cfg.CaptionDelay,
			Poster:    cfg.PosterDelay,
			Video:     cfg.VideoDelay,
			Assistant: cfg.AssistantDelay,
		},
		Tables:  tables,
		Usage:   service.UsageRecorder(usageRepo, logger),
		Logger:  logger,
		Metrics: m,
	})
	go manager.Run(ctx)

	campaignService := &service.CampaignService{
		CampaignRepo:        campaignRepo,
		CampaignCreatorRepo: campaignCreatorRepo,
		Logger:              logger,
	}
	creatorService := &service.CreatorService{CreatorRepo: creatorRepo}
	profileService := &service.ProfileService{ProfileRepo: profileRepo}
	adminService := &service.AdminService{ProfileRepo: profileRepo, TestimonialRepo: testimonialRepo, Logger: logger}
	postService := &service.PostService{
		PostRepo:    postRepo,
		AccountRepo: accountRepo,
		Queue:       q,
		Tables:      tables,
		Logger:      logger,
	}

	rs := controller.Responder{Logger: logger}
	limiter := middleware.NewRateLimiter(cfg.RateBurst, cfg.RatePerSec)
	limiter.TrustedProxies = cfg.TrustedProxies
	go limiter.Run(ctx)

	h := router.New(router.Deps{
		Logger:       logger,
		Metrics:      m,
		Tokens:       tokens,
		RateLimiter:  limiter,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Auth: &controller.AuthController{Responder: rs, AuthService: &service.AuthService{
			Users: userRepo, Profiles: profileRepo, Tokens: tokens, Logger: logger,
		}},
		Profile: &controller.ProfileController{
			Responder:      rs,
			ProfileService: profileService,
			OverviewService: &service.OverviewService{
				CampaignRepo: campaignRepo, PostRepo: postRepo, UsageRepo: usageRepo,
			},
		},
		Campaigns: &controller.CampaignController{Responder: rs, CampaignService: campaignService},
		Creators:  &controller.CreatorController{Responder: rs, CreatorService: creatorService},
		Posts: &controller.PostController{
			Responder:    rs,
			PostService:  postService,
			AssetService: &service.AssetService{AssetRepo: assetRepo},
		},
		Admin: &controller.AdminController{
			Responder:          rs,
			AdminService:       adminService,
			TestimonialService: &service.TestimonialService{TestimonialRepo: testimonialRepo},
		},
		Screens: handler.NewScreenHandler(&service.ScreenService{
			Manager:   manager,
			Creators:  creatorService,
			Campaigns: campaignService,
			Admin:     adminService,
			AssetRepo: assetRepo,
			Logger:    logger,
		}, rs),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		// generation requests hold the connection for the mock delay
		WriteTimeout: cfg.GenerationTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	manager.CloseAll()
	return srv.Shutdown(shutdownCtx)
}

// openQueue publishes to RabbitMQ when AMQP_URL is set; cmd/worker then
// consumes. Without it the publish simulation runs in process.
func openQueue(ctx context.Context, cfg *config.Config, conn *sql.DB, logger *zap.Logger, m *metrics.Metrics) (queue.Queue, func(), error) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, logger)
		if err != nil {
			return nil, nil, err
		}
		return q, func() { _ = q.Close() }, nil
	}

	q := queue.NewInMemoryQueue(logger)
	worker := service.NewWorker(
		&repository.SocialPostRepository{DB: conn},
		&repository.SocialAccountRepository{DB: conn},
		cfg.PublishDelay,
		logger,
	)
	worker.Metrics = m
	if err := queue.StartPostPublishSubscriber(ctx, q, worker.Handle, logger); err != nil {
		return nil, nil, err
	}
	logger.Info("AMQP_URL not set, publishing in process")
	return q, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.PublishDelay+5*time.Second)
		defer cancel()
		if err := q.Close(closeCtx); err != nil {
			logger.Warn("publish jobs still running at exit", zap.Error(err))
		}
	}, nil
}
