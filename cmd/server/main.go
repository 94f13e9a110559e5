package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chatwii/backend/internal/audit"
	"github.com/chatwii/backend/internal/bots"
	"github.com/chatwii/backend/internal/cache"
	"github.com/chatwii/backend/internal/config"
	"github.com/chatwii/backend/internal/database"
	"github.com/chatwii/backend/internal/handlers"
	"github.com/chatwii/backend/internal/logger"
	"github.com/chatwii/backend/internal/media"
	"github.com/chatwii/backend/internal/middleware"
	"github.com/chatwii/backend/internal/moderation"
	"github.com/chatwii/backend/internal/profanity"
	"github.com/chatwii/backend/internal/repository"
	"github.com/chatwii/backend/internal/settings"
	"github.com/chatwii/backend/internal/storage"
	"github.com/chatwii/backend/internal/websocket"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("=== ChatWii backend starting ===")

	// Initialize database
	if err := database.Initialize(); err != nil {
		logger.FatalWithFields("Failed to initialize database", err)
	}
	if err := database.Migrate(); err != nil {
		logger.FatalWithFields("Failed to run migrations", err)
	}

	// Redis is optional: without it the settings service reads straight
	// from the database
	redisClient, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		logger.WarnWithFields("Redis unavailable, continuing without settings cache", err)
		redisClient = nil
	}

	// S3 uploader for avatar management
	s3Uploader, err := storageUploader(cfg)
	if err != nil {
		logger.FatalWithFields("Failed to initialize S3 uploader", err)
	}

	// Realtime hub for kick/ban/settings events
	hub := websocket.NewHub()
	hub.Run()
	defer hub.Shutdown()
	wsHandler := websocket.NewHandler(hub, cfg.JWTSecret)

	// Services
	wordStore := repository.NewWordStore(database.DB)
	banRepo := repository.NewBanRepository(database.DB)

	profanitySvc := profanity.NewService(wordStore, logger.Log)
	moderationSvc := moderation.NewService(database.DB, banRepo, hub, logger.Log)
	settingsSvc := settings.NewService(database.DB, redisClient, logger.Log)
	botsSvc := bots.NewService(database.DB, logger.Log)
	auditSvc := audit.NewService(database.DB, logger.Log)
	mediaSvc := media.NewService(database.DB, s3Uploader, logger.Log)

	// Warm the profanity cache so the first text checks don't pay the
	// initial load
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	profanitySvc.Cache().EnsureFresh(warmCtx, profanity.CategoryChat)
	profanitySvc.Cache().EnsureFresh(warmCtx, profanity.CategoryNickname)
	warmCancel()

	// HTTP engine
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.PrometheusMetrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.NewHandlers(profanitySvc, moderationSvc, settingsSvc, botsSvc, auditSvc, mediaSvc, hub)
	h.RegisterRoutes(r, cfg.JWTSecret, wsHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening on :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithFields("HTTP server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.ErrorWithFields("Forced shutdown", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Log.Info("Server stopped")
}

func storageUploader(cfg *config.Config) (storage.Uploader, error) {
	uploader, err := storage.NewS3Uploader(cfg.AWSRegion, cfg.AWSBucket, cfg.CDNBaseURL)
	if err != nil {
		return nil, err
	}
	if err := uploader.CheckBucketAccess(context.Background()); err != nil {
		logger.WarnWithFields("S3 bucket access failed - avatar uploads will fail", err)
	}
	return uploader, nil
}

func corsOrigins() []string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:3000"}
}
