// Package main contains the entrypoint for the daily mentor bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dailymentor/dailymentor/internal/config"
	"github.com/dailymentor/dailymentor/internal/gemini"
	"github.com/dailymentor/dailymentor/internal/logger"
	"github.com/dailymentor/dailymentor/internal/pipeline"
	"github.com/dailymentor/dailymentor/internal/retry"
	"github.com/dailymentor/dailymentor/internal/scheduler"
	"github.com/dailymentor/dailymentor/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes all components (config, logger, gemini client, telegram
// client, pipeline), executes the pipeline once or on a schedule, and
// returns an exit code (0 for successful delivery, 1 for failure).
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	genClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	tgClient, err := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID, log)
	if err != nil {
		log.Error("Failed to initialize Telegram client", "error", err)
		return 1
	}

	policy := retry.Policy{MaxAttempts: cfg.Retry.MaxAttempts, Delay: cfg.Retry.Delay}
	p := pipeline.New(genClient, tgClient, policy, log)

	if cfg.Schedule != "" {
		return serve(ctx, log, cfg.Schedule, p)
	}

	outcome, err := p.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Run aborted by signal")
		}
		return 1
	}
	log.Info("Quote delivered", "quote_length", len(outcome.Quote))
	return 0
}

// serve keeps the process alive and runs the pipeline on the configured
// cron schedule until a termination signal arrives.
func serve(ctx context.Context, log *slog.Logger, cronExpr string, p *pipeline.Pipeline) int {
	sched, err := scheduler.New(log, cronExpr, func(ctx context.Context) error {
		_, runErr := p.Run(ctx)
		return runErr
	})
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	sched.Start()
	<-ctx.Done()

	log.Info("Shutdown signal received, stopping scheduler...")
	if err := sched.Stop(); err != nil {
		return 1
	}
	return 0
}
