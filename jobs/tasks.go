package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStatsWarmup rebuilds the cached statistics report.
	TaskStatsWarmup = "advisor:stats_warmup"
	// TaskStatsInvalidate drops every cached statistics report.
	TaskStatsInvalidate = "advisor:stats_invalidate"

	// CronStatsWarmup runs the warmup at the top of every hour.
	CronStatsWarmup = "0 * * * *"
)

// StatsWarmupPayload describes why a warmup was requested.
type StatsWarmupPayload struct {
	Reason string `json:"reason,omitempty"`
}

// StatsInvalidatePayload controls an invalidation run.
type StatsInvalidatePayload struct {
	Reason string `json:"reason,omitempty"`
	// Rewarm rebuilds the report right after the version bump.
	Rewarm bool `json:"rewarm"`
}

// NewStatsWarmupTask constructs a warmup task.
func NewStatsWarmupTask(payload StatsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsWarmup, data), nil
}

// NewStatsInvalidateTask constructs an invalidation task.
func NewStatsInvalidateTask(payload StatsInvalidatePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsInvalidate, data), nil
}

// decodePayload accepts an empty payload as the zero value.
func decodePayload(raw []byte, target any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}
