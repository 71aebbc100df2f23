package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/odyssey-erp/odyssey-advisor/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// StatsCache is the part of the statistics service the jobs drive.
type StatsCache interface {
	WarmReport(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) (int64, error)
}

// StatsJob handles the statistics cache tasks.
type StatsJob struct {
	Stats   StatsCache
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// NewStatsJob wires dependencies for the statistics handlers.
func NewStatsJob(stats StatsCache, logger *slog.Logger, metrics *jobmetrics.Metrics) *StatsJob {
	return &StatsJob{Stats: stats, Logger: logger, Metrics: metrics, Timeout: time.Minute}
}

// HandleWarmup processes TaskStatsWarmup tasks.
func (j *StatsJob) HandleWarmup(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Stats == nil {
		return errors.New("stats warmup: handler not configured")
	}
	var payload StatsWarmupPayload
	if err := decodePayload(t.Payload(), &payload); err != nil {
		return fmt.Errorf("stats warmup: decode payload: %v: %w", err, asynq.SkipRetry)
	}

	tracker := j.metrics().Track(TaskStatsWarmup)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger(TaskStatsWarmup).With(slog.String("reason", payload.Reason))
	start := time.Now()
	if err := j.warm(ctx); err != nil {
		logger.Error("stats warmup", slog.Any("error", err))
		return err
	}
	logger.Info("stats report warmed", slog.Duration("duration", time.Since(start)))
	return nil
}

// HandleInvalidate processes TaskStatsInvalidate tasks.
func (j *StatsJob) HandleInvalidate(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Stats == nil {
		return errors.New("stats invalidate: handler not configured")
	}
	var payload StatsInvalidatePayload
	if err := decodePayload(t.Payload(), &payload); err != nil {
		return fmt.Errorf("stats invalidate: decode payload: %v: %w", err, asynq.SkipRetry)
	}

	tracker := j.metrics().Track(TaskStatsInvalidate)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger(TaskStatsInvalidate).With(slog.String("reason", payload.Reason))
	version, err := j.Stats.Invalidate(ctx)
	if err != nil {
		logger.Error("stats invalidate", slog.Any("error", err))
		return err
	}
	logger.Info("stats cache invalidated", slog.Int64("version", version))

	if payload.Rewarm {
		if err := j.warm(ctx); err != nil {
			logger.Error("stats rewarm", slog.Any("error", err))
			return err
		}
	}
	return nil
}

func (j *StatsJob) warm(ctx context.Context) error {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}
	_, err := j.Stats.WarmReport(ctx)
	return err
}

// Registrations returns the task handlers and the hourly warmup schedule.
func (j *StatsJob) Registrations() ([]TaskHandler, []CronRegistration, error) {
	task, err := NewStatsWarmupTask(StatsWarmupPayload{Reason: "cron"})
	if err != nil {
		return nil, nil, err
	}
	handlers := []TaskHandler{
		{Type: TaskStatsWarmup, Handler: j.HandleWarmup},
		{Type: TaskStatsInvalidate, Handler: j.HandleInvalidate},
	}
	cron := []CronRegistration{
		{Spec: CronStatsWarmup, Task: task, Options: []asynq.Option{asynq.Queue(QueueDefault), asynq.Unique(30 * time.Minute)}},
	}
	return handlers, cron, nil
}

func (j *StatsJob) logger(task string) *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", task))
	}
	return slog.Default().With(slog.String("job", task))
}

func (j *StatsJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
