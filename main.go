package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"credit-limit/config"
	httpLayer "credit-limit/http"
	"credit-limit/logger"
	"credit-limit/repository"
	"credit-limit/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("error loading config", "error", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "credit-limit",
	})

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()
		cache = redisCache
		log.Info("using redis decision cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	} else {
		cache = repository.NewMockCache()
		log.Info("using in-memory decision cache")
	}

	creditLimitService := service.NewCreditLimitService(cache,
		service.WithStrictValidation(cfg.StrictValidation),
	)
	creditLimitHandler := httpLayer.NewCreditLimitHandler(creditLimitService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitRefill)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      httpLayer.NewRouter(creditLimitHandler, creditLimitService, rateLimiter),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr, "strict_validation", cfg.StrictValidation)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error("error starting server", "error", err)
		return
	case <-quit:
		log.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("error during server shutdown", "error", err)
	}

	log.Info("server exited")
}
