package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/form-response-service/internal/api/http"
	"github.com/spec-kit/form-response-service/internal/api/http/handlers"
	"github.com/spec-kit/form-response-service/internal/auth"
	"github.com/spec-kit/form-response-service/internal/broadcast"
	"github.com/spec-kit/form-response-service/internal/config"
	"github.com/spec-kit/form-response-service/internal/events"
	"github.com/spec-kit/form-response-service/internal/observability"
	"github.com/spec-kit/form-response-service/internal/persistence"
	"github.com/spec-kit/form-response-service/internal/repository"
	"github.com/spec-kit/form-response-service/internal/repository/memory"
	pgrepo "github.com/spec-kit/form-response-service/internal/repository/postgres"
	"github.com/spec-kit/form-response-service/internal/service"
	"github.com/spec-kit/form-response-service/internal/worker"
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

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo         repository.UserRepository
		responseRepo     repository.FormResponseRepository
		messageRepo      repository.MessageRepository
		notificationRepo repository.NotificationRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = pgrepo.NewUserRepository(pool)
		responseRepo = pgrepo.NewFormResponseRepository(pool)
		messageRepo = pgrepo.NewMessageRepository(pool)
		notificationRepo = pgrepo.NewNotificationRepository(pool)
	} else {
		store := memory.NewStore()
		userRepo = store.Users()
		responseRepo = store.Responses()
		messageRepo = store.Messages()
		notificationRepo = store.Notifications()
	}

	dispatcher := events.NewInMemoryDispatcher(logger)

	var queue broadcast.Queue
	if strings.EqualFold(cfg.Broadcast.Backend, "redis") {
		queue = broadcast.NewRedisQueue(redis.Client)
		logger.Info("broadcast queue backed by redis")
	} else {
		queue = broadcast.NewMemoryQueue()
	}

	authService := service.NewAuthService(*cfg, userRepo)
	responseService := service.NewResponseService(service.ResponseDependencies{
		ResponseRepo: responseRepo,
		UserRepo:     userRepo,
		Dispatcher:   dispatcher,
	})
	chatService := service.NewChatService(service.ChatDependencies{
		MessageRepo: messageRepo,
		Dispatcher:  dispatcher,
		Queue:       queue,
		Logger:      logger,
	})
	notificationService := service.NewNotificationService(service.NotificationDependencies{
		NotificationRepo: notificationRepo,
		ResponseRepo:     responseRepo,
		MessageRepo:      messageRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
	}, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Responses:      handlers.NewResponsesHandler(responseService),
		Messages:       handlers.NewMessagesHandler(responseService, chatService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Events:         handlers.NewEventsHandler(responseService, queue),
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
