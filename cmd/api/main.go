package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/college-records/internal/api/http"
	"github.com/spec-kit/college-records/internal/api/http/handlers"
	"github.com/spec-kit/college-records/internal/auth"
	"github.com/spec-kit/college-records/internal/config"
	"github.com/spec-kit/college-records/internal/events"
	"github.com/spec-kit/college-records/internal/observability"
	"github.com/spec-kit/college-records/internal/persistence"
	"github.com/spec-kit/college-records/internal/repository"
	"github.com/spec-kit/college-records/internal/service"
	"github.com/spec-kit/college-records/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	if cfg.Postgres.SeedData && pool != nil {
		if err := persistence.SeedData(ctx, userRepo, studentRepo, cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	var revocations auth.RevocationStore
	if cfg.Auth.RevocationBackend == "redis" {
		revocations = auth.NewRedisRevocationStore(redis.Client)
	} else {
		revocations = auth.NewMemoryRevocationStore()
	}

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, revocations, dispatcher)
	studentService := service.NewStudentService(studentRepo, dispatcher)
	dashboardService := service.NewDashboardService(studentRepo, userRepo, pg)
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), revocations, userRepo, logger)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Students:       handlers.NewStudentsHandler(studentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
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
