package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/portfolio-service/internal/api/http"
	"github.com/spec-kit/portfolio-service/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-service/internal/auth"
	"github.com/spec-kit/portfolio-service/internal/cache"
	"github.com/spec-kit/portfolio-service/internal/config"
	"github.com/spec-kit/portfolio-service/internal/events"
	"github.com/spec-kit/portfolio-service/internal/observability"
	"github.com/spec-kit/portfolio-service/internal/persistence"
	"github.com/spec-kit/portfolio-service/internal/repository"
	"github.com/spec-kit/portfolio-service/internal/service"
	"github.com/spec-kit/portfolio-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
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
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	tokens, err := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("failed to init token codec", zap.Error(err))
	}
	gate := auth.NewGate(tokens, auth.AdminOnly(cfg.Auth.EnforceAdminRole), logger)
	gate.WarnIfOpen()
	guard := auth.NewEdgeGuard(tokens, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	listings := cache.NewListings(cache.NewRedisStore(redis.Client), cfg.Cache.TTL(), logger)
	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartSubscribers(dispatcher, notifications, listings)

	pool := pg.Pool
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: repository.NewUserRepository(pool),
		Tokens:   tokens,
		Logger:   logger,
	})
	if cfg.Auth.SeedUsersPath != "" {
		if _, err := authService.SeedUsersFromFile(ctx, cfg.Auth.SeedUsersPath); err != nil {
			logger.Fatal("failed to seed users", zap.String("path", cfg.Auth.SeedUsersPath), zap.Error(err))
		}
	}

	projectService := service.NewProjectService(repository.NewProjectRepository(pool), listings, dispatcher, logger)
	skillService := service.NewSkillService(repository.NewSkillRepository(pool), listings, dispatcher, logger)
	aboutService := service.NewAboutService(repository.NewAboutRepository(pool), listings, dispatcher, logger)
	blogService := service.NewBlogService(repository.NewBlogRepository(pool), listings, dispatcher, logger)
	tagService := service.NewTagService(repository.NewTagRepository(pool))
	contactService := service.NewContactService(repository.NewContactRepository(pool), dispatcher, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		CaseSensitive: true,
		ErrorHandler:  httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:          cfg.App.RequestTimeout(),
		CORSAllowOrigins: cfg.App.CORSAllowOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Auth:     handlers.NewAuthHandler(authService, cfg.Auth.CookieSecure),
		Projects: handlers.NewProjectsHandler(projectService),
		Skills:   handlers.NewSkillsHandler(skillService),
		About:    handlers.NewAboutHandler(aboutService),
		Blog:     handlers.NewBlogHandler(blogService),
		Tags:     handlers.NewTagsHandler(tagService),
		Contacts: handlers.NewContactsHandler(contactService),
		Pages:    handlers.NewPagesHandler(cfg.App.Name),
		Gate:     gate,
		Guard:    guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
