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

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/odyssey-advisor/internal/app"
	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	"github.com/odyssey-erp/odyssey-advisor/internal/consult"
	consulthttp "github.com/odyssey-erp/odyssey-advisor/internal/consult/http"
	"github.com/odyssey-erp/odyssey-advisor/internal/events"
	"github.com/odyssey-erp/odyssey-advisor/internal/filter"
	"github.com/odyssey-erp/odyssey-advisor/internal/llm"
	"github.com/odyssey-erp/odyssey-advisor/internal/observability"
	"github.com/odyssey-erp/odyssey-advisor/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-advisor/internal/platform/db"
	"github.com/odyssey-erp/odyssey-advisor/internal/stats"
	"github.com/odyssey-erp/odyssey-advisor/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, stats report cache disabled", slog.Any("error", err))
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	repo := catalog.NewRepository(pool)

	generator := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Temperature: 0.3,
		Timeout:     cfg.GenerationTimeout + 5*time.Second,
	})
	consultService := consult.NewService(repo, generator, consult.Options{
		GenerationTimeout: cfg.GenerationTimeout,
		Logger:            logger,
		Observer:          metrics,
	})
	statsService := stats.NewService(repo, stats.NewCache(redisClient, cfg.StatsCacheTTL))
	filterService := filter.NewService(repo, filter.NewEngine(logger))

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("kafka publisher close", slog.Any("error", err))
		}
	}()

	api, err := consulthttp.NewHandler(consulthttp.Options{
		Logger:           logger,
		Consulter:        consultService,
		Stats:            statsService,
		Filter:           filterService,
		Publisher:        publisher,
		ConsultRateLimit: cfg.ConsultRateLimit,
	})
	if err != nil {
		logger.Error("init api handler", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpts, err := jobs.RedisClientOpt(cfg.RedisAddr)
	if err != nil {
		logger.Error("parse redis address", slog.Any("error", err))
		os.Exit(1)
	}
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	readiness := map[string]app.ReadinessCheck{
		"postgres": pool.Ping,
		"llm":      generator.Ping,
	}
	if redisClient != nil {
		readiness["redis"] = func(ctx context.Context) error { return pingRedis(ctx, redisClient) }
	}

	router := app.NewRouter(app.RouterParams{
		Logger:     logger,
		Config:     cfg,
		Metrics:    metrics,
		API:        api,
		JobHandler: jobs.NewHandler(inspector, logger),
		Readiness:  readiness,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func pingRedis(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
