package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/gamification-service/internal/api/http"
	"github.com/spec-kit/gamification-service/internal/api/http/handlers"
	"github.com/spec-kit/gamification-service/internal/auth"
	"github.com/spec-kit/gamification-service/internal/config"
	"github.com/spec-kit/gamification-service/internal/events"
	"github.com/spec-kit/gamification-service/internal/observability"
	"github.com/spec-kit/gamification-service/internal/persistence"
	"github.com/spec-kit/gamification-service/internal/repository"
	"github.com/spec-kit/gamification-service/internal/service"
	"github.com/spec-kit/gamification-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	deps := service.GamificationDependencies{
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     logger,
		Metrics:    observability.NewMetrics(),
		ClockSkew:  cfg.Gamification.ClockSkewTolerance(),
	}

	if pool := pg.PoolHandle(); pool != nil {
		deps.ActivityRepo = repository.NewActivityRepository(pool)
		deps.AwardRepo = repository.NewScoreAwardRepository(pool)
		deps.StreakRepo = repository.NewStreakRepository(pool)
		deps.AchievementRepo = repository.NewAchievementRepository(pool)
		deps.ProfileRepo = repository.NewProfileRepository(pool)
	} else {
		logger.Warn("running with in-memory stores; state will not survive restarts")
		mem := repository.NewMemoryStore()
		deps.ActivityRepo = mem.Activities()
		deps.AwardRepo = mem.Awards()
		deps.StreakRepo = mem.Streaks()
		deps.AchievementRepo = mem.Achievements()
		deps.ProfileRepo = mem.Profiles()
	}

	gamificationService := service.NewGamificationService(deps)

	leaderboardService := service.NewLeaderboardService(redis, cfg.Gamification, logger)
	leaderboardService.RegisterHandlers(deps.Dispatcher)

	notificationService := service.NewNotificationService(deps.Dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authMiddleware := auth.NewAuthMiddleware(auth.NewTokenVerifier(cfg.Auth.JWTSecret))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, deps.Metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Events:         handlers.NewEventsHandler(gamificationService),
		Profile:        handlers.NewProfileHandler(gamificationService),
		Leaderboard:    handlers.NewLeaderboardHandler(leaderboardService),
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
