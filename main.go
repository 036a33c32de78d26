package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"linkgate/internal/cache"
	"linkgate/internal/config"
	"linkgate/internal/database"
	"linkgate/internal/entities"
	"linkgate/internal/logger"
	"linkgate/internal/metrics"
	"linkgate/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Environment: cfg.Environment,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		appLogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Error("failed to close database", "error", err)
		}
	}()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		appLogger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize Redis slug cache (optional - continue if Redis is unavailable)
	var slugCache cache.SlugCache
	if cfg.RedisURL != "" {
		slugCache, err = cache.NewRedisSlugCache(cfg.RedisURL, cache.DefaultTakenTTL)
		if err != nil {
			appLogger.Warn("redis unavailable, continuing without slug cache", "error", err)
			slugCache = nil
		} else {
			appLogger.Info("connected to redis slug cache")
			defer slugCache.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := server.NewRouter(ctx, server.Options{
		Config:    cfg,
		DB:        db,
		SlugCache: slugCache,
		Logger:    appLogger,
		Metrics:   metrics.New(),
		Clock:     entities.RealClock{},
	})

	srv := server.NewHTTPServer(":"+cfg.Port, router)
	if err := server.Run(ctx, srv, cfg.ShutdownTimeout, appLogger); err != nil {
		appLogger.Error("server exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}
