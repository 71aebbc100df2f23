package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/odyssey-advisor/internal/filter"
	"github.com/odyssey-erp/odyssey-advisor/internal/intent"
	"github.com/odyssey-erp/odyssey-advisor/jobs"
)

const usage = `usage: advisorctl <command> [flags]

commands:
  jobs warmup [--reason R]       enqueue a statistics report rebuild
  jobs invalidate [--reason R]   drop cached reports and rebuild
  jobs status                    show default queue counters
  jobs scheduled [--size N]      list scheduled tasks
  intent <query>                 print the intent and filter criteria for a query
`

// Jobs is the subset of JobsCLI the command runner needs.
type Jobs interface {
	Trigger(ctx context.Context, name, reason string) (*asynq.TaskInfo, error)
	InspectQueue(ctx context.Context) (QueueStats, error)
	ListScheduled(ctx context.Context, size int) ([]*asynq.TaskInfo, error)
}

// Runner dispatches advisorctl commands.
type Runner struct {
	Jobs   Jobs
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes args and returns the process exit code.
func (r Runner) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(r.Stderr, usage)
		return 2
	}
	switch args[0] {
	case "intent":
		return r.intent(args[1:])
	case "jobs":
		return r.jobs(ctx, args[1:])
	case "help", "-h", "--help":
		_, _ = fmt.Fprint(r.Stdout, usage)
		return 0
	default:
		_, _ = fmt.Fprintf(r.Stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
}

func (r Runner) intent(args []string) int {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		_, _ = fmt.Fprintln(r.Stderr, "intent: query is required")
		return 2
	}
	rec := intent.Extract(query)
	enc := json.NewEncoder(r.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Intent   intent.Record   `json:"intent"`
		Flags    []string        `json:"flags"`
		Criteria filter.Criteria `json:"criteria"`
	}{Intent: rec, Flags: rec.Flags(), Criteria: filter.FromIntent(rec)}); err != nil {
		_, _ = fmt.Fprintf(r.Stderr, "intent: encode json: %v\n", err)
		return 1
	}
	return 0
}

func (r Runner) jobs(ctx context.Context, args []string) int {
	if len(args) == 0 {
		_, _ = fmt.Fprint(r.Stderr, usage)
		return 2
	}
	if r.Jobs == nil {
		_, _ = fmt.Fprintln(r.Stderr, "jobs: redis not configured")
		return 1
	}
	fs := flag.NewFlagSet("jobs "+args[0], flag.ContinueOnError)
	fs.SetOutput(r.Stderr)
	reason := fs.String("reason", "manual", "reason recorded with the task")
	size := fs.Int("size", 10, "number of scheduled tasks to list")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	switch args[0] {
	case "warmup", "invalidate":
		name := jobs.TaskStatsWarmup
		if args[0] == "invalidate" {
			name = jobs.TaskStatsInvalidate
		}
		info, err := r.Jobs.Trigger(ctx, name, *reason)
		if err != nil {
			_, _ = fmt.Fprintf(r.Stderr, "jobs %s: %v\n", args[0], err)
			return 1
		}
		_, _ = fmt.Fprintf(r.Stdout, "enqueued %s id=%s\n", name, info.ID)
		return 0
	case "status":
		stats, err := r.Jobs.InspectQueue(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(r.Stderr, "jobs status: %v\n", err)
			return 1
		}
		_, _ = fmt.Fprintf(r.Stdout, "queue=%s pending=%d active=%d scheduled=%d retry=%d failed=%d\n",
			stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry, stats.Failed)
		return 0
	case "scheduled":
		tasks, err := r.Jobs.ListScheduled(ctx, *size)
		if err != nil {
			_, _ = fmt.Fprintf(r.Stderr, "jobs scheduled: %v\n", err)
			return 1
		}
		if len(tasks) == 0 {
			_, _ = fmt.Fprintln(r.Stdout, "no scheduled tasks")
			return 0
		}
		for _, t := range tasks {
			_, _ = fmt.Fprintf(r.Stdout, "%s %s next=%s\n", t.ID, t.Type, t.NextProcessAt.UTC().Format("2006-01-02T15:04:05Z"))
		}
		return 0
	default:
		_, _ = fmt.Fprintf(r.Stderr, "unknown jobs command %q\n", args[0])
		return 2
	}
}
