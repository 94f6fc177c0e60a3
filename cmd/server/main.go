package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/listingcheck/backend/config"
	httpDelivery "github.com/listingcheck/backend/internal/delivery/http"
	"github.com/listingcheck/backend/internal/domain"
	"github.com/listingcheck/backend/internal/infrastructure/cache"
	"github.com/listingcheck/backend/internal/infrastructure/postgres"
	"github.com/listingcheck/backend/internal/infrastructure/provider"
	"github.com/listingcheck/backend/internal/logger"
	"github.com/listingcheck/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer logger.Sync()

	logger.Info("starting ListingCheck backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
		zap.Bool("database_enabled", cfg.Database.Enabled),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	analysisCache, closeCache, err := newCache(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer closeCache()

	var repository domain.AnalysisRepository
	if cfg.Database.Enabled {
		db, err := postgres.Open(cfg.Database.DSN, cfg.Database.MaxOpenConns)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close()

		repo := postgres.NewAnalysisRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.Migrate(ctx)
		cancel()
		if err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		repository = repo
		logger.Info("analysis persistence enabled")
	}

	providerClient := provider.NewClient(provider.Config{
		BaseURL:           cfg.Provider.BaseURL,
		APIKey:            cfg.Provider.APIKey,
		Timeout:           cfg.Provider.Timeout,
		MaxRetries:        cfg.Provider.MaxRetries,
		RequestsPerSecond: cfg.Provider.RequestsPerSecond,
	}, logger)

	if cfg.Server.Environment == "development" {
		providerClient.SetDebug(true)
		logger.Debug("provider client debug mode enabled")
	}
	if cfg.Provider.APIKey == "" {
		logger.Warn("provider API key not configured; only demo listings can be analyzed",
			zap.String("provider_url", cfg.Provider.BaseURL))
	}

	analysisService := usecase.NewAnalysisService(
		analysisCache,
		providerClient,
		repository,
		logger,
		usecase.AnalysisServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	handler := httpDelivery.NewHandler(analysisService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// newCache builds the configured cache and returns a function that releases it
func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, func(), error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		if err := redisCache.Ping(ctx); err != nil {
			redisCache.Close()
			return nil, nil, err
		}
		return redisCache, func() { redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache(10 * time.Minute)
	return memoryCache, func() { memoryCache.Close() }, nil
}
