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

	"github.com/odyssey-erp/odyssey-advisor/internal/app"
	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	jobmetrics "github.com/odyssey-erp/odyssey-advisor/internal/jobs"
	"github.com/odyssey-erp/odyssey-advisor/internal/observability"
	"github.com/odyssey-erp/odyssey-advisor/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-advisor/internal/platform/db"
	"github.com/odyssey-erp/odyssey-advisor/internal/stats"
	"github.com/odyssey-erp/odyssey-advisor/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	statsService := stats.NewService(catalog.NewRepository(pool), stats.NewCache(redisClient, cfg.StatsCacheTTL))
	statsJob := jobs.NewStatsJob(statsService, logger, jobmetrics.NewMetrics(metrics.Registerer()))

	handlers, cron, err := statsJob.Registrations()
	if err != nil {
		logger.Error("build stats tasks", slog.Any("error", err))
		os.Exit(1)
	}

	redisOpts, err := jobs.RedisClientOpt(cfg.RedisAddr)
	if err != nil {
		logger.Error("parse redis address", slog.Any("error", err))
		os.Exit(1)
	}
	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Handlers:  handlers,
		Cron:      cron,
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if addr := cfg.WorkerMetricsAddr; addr != "" {
		metricsServer := &http.Server{Addr: addr, Handler: metrics.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("worker metrics server", slog.Any("error", err))
			}
		}()
		defer func() {
			_ = metricsServer.Close()
		}()
	}

	logger.Info("starting worker")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
