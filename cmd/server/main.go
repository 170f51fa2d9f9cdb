package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/appedme/konvo-backend/internal/config"
	"github.com/appedme/konvo-backend/internal/db"
	httpHandlers "github.com/appedme/konvo-backend/internal/http/handlers"
	httpRouter "github.com/appedme/konvo-backend/internal/http/router"
	"github.com/appedme/konvo-backend/internal/logger"
	"github.com/appedme/konvo-backend/internal/repository"
	"github.com/appedme/konvo-backend/internal/service"
	"github.com/appedme/konvo-backend/internal/storage"
	"github.com/appedme/konvo-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Вспомогательные сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	mediaStorage, err := storage.NewMediaStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	spaceRepo := repository.NewSpaceRepository(dbConn)
	postRepo := repository.NewPostRepository(dbConn)
	commentRepo := repository.NewCommentRepository(dbConn)
	voteRepo := repository.NewVoteRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)
	verificationRepo := repository.NewVerificationRepository(dbConn)
	moderationRepo := repository.NewModerationRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)
	statsCounters := repository.NewStatsCounters(userRepo, postRepo, reportRepo, verificationRepo)

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	userService := service.NewUserService(userRepo)
	spaceService := service.NewSpaceService(spaceRepo)
	postService := service.NewPostService(postRepo, spaceRepo)
	notificationService := service.NewNotificationService(notificationRepo, cfg.NotificationDedupWindow)
	voteService := service.NewVoteService(voteRepo, postRepo, notificationService)
	commentService := service.NewCommentService(commentRepo, postRepo, notificationService)
	reportService := service.NewReportService(reportRepo, postRepo, commentRepo, userRepo, spaceRepo)
	verificationService := service.NewVerificationService(verificationRepo, spaceRepo)
	moderationService := service.NewModerationService(moderationRepo, reportRepo, verificationRepo, postRepo, commentRepo, notificationService)
	cacheService := service.NewCacheService()
	adminService := service.NewAdminService(userRepo, statsCounters, cacheService)
	seedService := service.NewSeedService(userRepo, spaceRepo, postRepo)

	// Вебсокеты: уведомления сохраняются сервисом и после этого
	// доставляются подключённым клиентам через hub.
	hub := ws.NewHub()
	go hub.Run()
	notificationService.SetPusher(hub)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	profileHandler := httpHandlers.NewProfileHandler(userService)
	spaceHandler := httpHandlers.NewSpaceHandler(spaceService)
	postHandler := httpHandlers.NewPostHandler(postService, commentService)
	voteHandler := httpHandlers.NewVoteHandler(voteService)
	commentHandler := httpHandlers.NewCommentHandler(commentService)
	reportHandler := httpHandlers.NewReportHandler(reportService)
	verificationHandler := httpHandlers.NewVerificationHandler(verificationService)
	moderationHandler := httpHandlers.NewModerationHandler(moderationService, cacheService)
	notificationHandler := httpHandlers.NewNotificationHandler(notificationService)
	adminHandler := httpHandlers.NewAdminHandler(adminService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, mediaStorage)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)
	seedHandler := httpHandlers.NewSeedHandler(seedService)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, profileHandler, spaceHandler, postHandler, voteHandler, commentHandler, reportHandler, verificationHandler, moderationHandler, notificationHandler, adminHandler, mediaHandler, wsHandler, healthHandler, seedHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
