package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/account-gateway/internal/api/http"
	"github.com/spec-kit/account-gateway/internal/api/http/handlers"
	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/backend"
	"github.com/spec-kit/account-gateway/internal/config"
	"github.com/spec-kit/account-gateway/internal/events"
	"github.com/spec-kit/account-gateway/internal/observability"
	"github.com/spec-kit/account-gateway/internal/persistence"
	"github.com/spec-kit/account-gateway/internal/ratelimit"
	"github.com/spec-kit/account-gateway/internal/repository"
	"github.com/spec-kit/account-gateway/internal/service"
	"github.com/spec-kit/account-gateway/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	if pool := pg.PoolHandle(); pool != nil {
		worker.StartAuditWorker(dispatcher, repository.NewAuditRepository(pool), logger)
	}

	client := backend.NewClient(cfg.Backend)
	logger.Info("backend resolved", zap.String("base_url", cfg.Backend.BaseURL()))

	limiter := ratelimit.NewResendLimiter(redis.Client, cfg.RateLimit)
	cookies := auth.NewCookieManager(cfg.Cookies)
	decoder := auth.NewDecoder(cfg.Session.JWTSecret)
	if decoder.Verifying() {
		logger.Info("edge token verification enabled")
	} else {
		logger.Warn("edge token verification disabled; decoding claims without signature checks")
	}

	flowService := service.NewFlowService(client, limiter, dispatcher, cfg.Cookies.VerificationTTL(), logger)
	directoryService := service.NewDirectoryService(client, dispatcher, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Pages:   handlers.NewPagesHandler(),
		Auth:    handlers.NewAuthHandler(flowService, cookies),
		Profile: handlers.NewProfileHandler(directoryService, cookies),
		Users:   handlers.NewUsersHandler(directoryService, cookies),
		Guard:   auth.NewRouteGuard(decoder),
		Metrics: metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
