package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kelseyhightower/envconfig"

	"github.com/odyssey-erp/odyssey-advisor/cmd/advisor/cli"
)

type ctlConfig struct {
	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg ctlConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		return 1
	}

	runner := cli.Runner{Stdout: os.Stdout, Stderr: os.Stderr}
	if len(args) > 0 && args[0] == "jobs" {
		jobsCLI, err := cli.NewJobsCLI(cfg.RedisAddr)
		if err != nil {
			slog.Default().Error("init jobs cli", slog.Any("error", err))
			return 1
		}
		defer func() {
			if err := jobsCLI.Close(); err != nil {
				slog.Default().Warn("close jobs cli", slog.Any("error", err))
			}
		}()
		runner.Jobs = jobsCLI
	}
	return runner.Run(ctx, args)
}
