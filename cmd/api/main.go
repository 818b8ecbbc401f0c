package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/workorder-service/internal/api/http"
	"github.com/spec-kit/workorder-service/internal/api/http/handlers"
	"github.com/spec-kit/workorder-service/internal/auth"
	"github.com/spec-kit/workorder-service/internal/config"
	"github.com/spec-kit/workorder-service/internal/events"
	"github.com/spec-kit/workorder-service/internal/observability"
	"github.com/spec-kit/workorder-service/internal/persistence"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/internal/service"
	"github.com/spec-kit/workorder-service/internal/worker"
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

	pool := pg.PoolHandle()
	store := repository.NewStore(pool)
	directoryRepo := repository.NewDirectoryRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	notificationWorker := worker.NewNotificationWorker(logger, metrics, cfg.Notification)
	notificationWorker.Register(dispatcher)

	authService := service.NewAuthService(cfg, service.AuthDependencies{DirectoryRepo: directoryRepo})
	directoryService := service.NewDirectoryService(directoryRepo)
	workflowService := service.NewWorkflowService(service.WorkflowDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	queryService := service.NewQueryService(service.QueryDependencies{
		Store:  store,
		Logger: logger,
	})
	engagementService := service.NewEngagementService(service.EngagementDependencies{
		Store:       store,
		RedisClient: redis.Client,
		Logger:      logger,
		ViewTTL:     cfg.Workflow.ViewThrottleTTL(),
	})

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), directoryRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(workflowService, queryService, engagementService),
		Workflow:       handlers.NewWorkflowHandler(workflowService),
		Directory:      handlers.NewDirectoryHandler(directoryService),
		AuthMiddleware: authMiddleware,
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
