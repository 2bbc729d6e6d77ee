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

	apihttp "github.com/dulagbps/records-service/internal/api/http"
	"github.com/dulagbps/records-service/internal/api/http/handlers"
	"github.com/dulagbps/records-service/internal/auth"
	"github.com/dulagbps/records-service/internal/config"
	"github.com/dulagbps/records-service/internal/events"
	"github.com/dulagbps/records-service/internal/observability"
	"github.com/dulagbps/records-service/internal/persistence"
	"github.com/dulagbps/records-service/internal/repository"
	"github.com/dulagbps/records-service/internal/service"
	"github.com/dulagbps/records-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	postgres, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer postgres.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, postgres.PoolHandle(), logger); err != nil {
			logger.Fatal("run migrations", zap.Error(err))
		}
	}

	redisConn := persistence.NewRedis(cfg.Redis, logger)
	defer redisConn.Close()

	var denylist auth.Denylist
	if redisConn.Ping(ctx) == nil {
		denylist = auth.NewRedisDenylist(redisConn.Client)
	} else {
		logger.Warn("redis unavailable; using in-memory token denylist")
		denylist = auth.NewMemoryDenylist()
	}

	pool := postgres.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	residentRepo := repository.NewResidentRepository(pool)
	caseRepo := repository.NewCaseRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, staffRepo, denylist)
	staffService := service.NewStaffService(staffRepo, authService)
	residentService := service.NewResidentService(residentRepo, dispatcher)
	caseService := service.NewCaseService(caseRepo, dispatcher)
	eventService := service.NewEventService(eventRepo, dispatcher)
	announcementService := service.NewAnnouncementService(announcementRepo, dispatcher)
	activityService := service.NewActivityService(activityRepo, logger, cfg.ActivityLog)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartActivityWorker(dispatcher, activityService, notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager(), denylist, staffRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})

	metrics := observability.NewMetrics()
	apihttp.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, postgres, redisConn),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService, authService, logger),
		Residents:      handlers.NewResidentsHandler(residentService),
		Cases:          handlers.NewCasesHandler(caseService),
		Events:         handlers.NewEventsHandler(eventService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementService, cfg.Upload),
		Activities:     handlers.NewActivitiesHandler(activityService, notificationService),
		AuthMiddleware: authMiddleware,
		UploadsDir:     cfg.Upload.RootDir(),
	})

	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
