package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/wellness/internal/config"
	"github.com/garrettladley/wellness/internal/metrics"
	xredis "github.com/garrettladley/wellness/internal/redis"
	"github.com/garrettladley/wellness/internal/server/handler"
	servermw "github.com/garrettladley/wellness/internal/server/middleware"
	"github.com/garrettladley/wellness/internal/service/health"
	"github.com/garrettladley/wellness/internal/service/user"
	"github.com/garrettladley/wellness/internal/storage"
	"github.com/garrettladley/wellness/internal/xhttp/middleware"
	"github.com/garrettladley/wellness/internal/xslog"
)

const (
	keyPort   = "port"
	keyEnv    = "env"
	keyLimit  = "limit"
	keyBurst  = "burst"
	keyWindow = "window"

	shutdownTimeout = 30 * time.Second
	hstsMaxAge      = 365 * 24 * time.Hour
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := xslog.WithLogger(context.Background(), logger)
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	logger.InfoContext(ctx, "initializing storage", xslog.Driver(string(cfg.Storage.Driver)))
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeLogged(ctx, logger, "store", store)

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = xredis.New(ctx, xredis.Config{
			URL:         cfg.Redis.URL,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize redis client: %w", err)
		}
		defer closeLogged(ctx, logger, "redis", redisClient)
	}

	limiter := initRateLimiter(ctx, cfg, redisClient, logger)
	if c, ok := limiter.(io.Closer); ok {
		defer closeLogged(ctx, logger, "rate limiter", c)
	}

	apiKeyCache := initAPIKeyCache(ctx, cfg, redisClient, logger)
	if c, ok := apiKeyCache.(io.Closer); ok {
		defer closeLogged(ctx, logger, "api key cache", c)
	}

	// Services
	userService := user.NewAPIKeyService(store, apiKeyCache, cfg.APIKeyCache.TTL)
	healthService := health.NewService(store)

	// Handlers
	checks := map[string]handler.Check{"store": store.Ping}
	if redisClient != nil {
		checks["redis"] = xredis.Check(redisClient)
	}
	healthHandler := handler.NewHealth(checks)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthHandler.HandleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	// Authenticated routes - protected by IP rate limiter + API key
	apiWrapped := middleware.Chain(handler.APIRoutes(healthService),
		servermw.RateLimit(limiter, cfg.RateLimit.TrustedProxies),
		servermw.APIKeyAuth(userService),
	)
	mux.Handle("/api/", apiWrapped)

	wrapped := middleware.Chain(mux,
		middleware.Recovery,
		middleware.Metrics,
		middleware.RequestID(middleware.WithIncomingRequestID()),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.SecurityHeaders(securityConfig(cfg)),
		middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Debug:          cfg.Env.IsDevelopment(),
		}),
		middleware.When(cfg.Compression, middleware.Gzip),
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.String(keyPort, cfg.Port),
			slog.String(keyEnv, string(cfg.Env)))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-done:
		logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initRateLimiter(ctx context.Context, cfg config.Config, redisClient *redis.Client, logger *slog.Logger) storage.RateLimiter {
	if redisClient != nil {
		logger.InfoContext(ctx, "initializing Redis rate limiter",
			slog.Int(keyLimit, cfg.RateLimit.WindowLimit),
			slog.Duration(keyWindow, cfg.RateLimit.Window))
		return storage.NewRedisRateLimiter(storage.RedisConfig{Client: redisClient}, cfg.RateLimit.WindowLimit, cfg.RateLimit.Window)
	}

	logger.InfoContext(ctx, "initializing in-memory rate limiter",
		slog.Float64(keyLimit, cfg.RateLimit.Limit),
		slog.Int(keyBurst, cfg.RateLimit.Burst))
	return storage.NewMemoryRateLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Burst)
}

func initAPIKeyCache(ctx context.Context, cfg config.Config, redisClient *redis.Client, logger *slog.Logger) storage.APIKeyCache {
	if redisClient != nil {
		logger.InfoContext(ctx, "initializing Redis API key cache")
		return storage.NewRedisAPIKeyCache(storage.RedisConfig{Client: redisClient})
	}

	logger.InfoContext(ctx, "initializing in-memory API key cache")
	return storage.NewMemoryAPIKeyCache(cfg.APIKeyCache.CleanupInterval)
}

func securityConfig(cfg config.Config) middleware.SecurityConfig {
	if cfg.Env.IsProduction() {
		return middleware.SecurityConfig{HSTSMaxAge: hstsMaxAge}
	}
	return middleware.SecurityConfig{}
}

func closeLogged(ctx context.Context, logger *slog.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.ErrorContext(ctx, "failed to close "+name, xslog.Error(err))
	}
}
