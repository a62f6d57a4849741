// Package scheduler runs the pipeline on a cron schedule for long-running
// deployments. One-shot runs (the default) do not use it; an external
// scheduler service triggers the process instead.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/dailymentor/dailymentor/internal/errs"
	"github.com/dailymentor/dailymentor/internal/logger"
)

// RunFunc is one scheduled execution of the pipeline.
type RunFunc func(ctx context.Context) error

// Scheduler wraps a gocron scheduler carrying a single cron job.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *slog.Logger
}

// New creates a scheduler that invokes run on the given cron expression in
// UTC. The scheduler is not started until Start is called.
func New(log *slog.Logger, cronExpr string, run RunFunc) (*Scheduler, error) {
	if log == nil {
		log = slog.Default()
	}
	logr := log.With("component", "scheduler")

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(logger.NewGocronLogger(log)),
	)
	if err != nil {
		return nil, errs.NewConfigError("failed to create scheduler", err)
	}

	_, err = s.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(
			func(ctx context.Context) {
				logr.Info("running scheduled quote run")
				startTime := time.Now()
				if runErr := run(ctx); runErr != nil {
					logr.Error("scheduled quote run failed", "error", runErr)
				}
				logr.Info("finished scheduled quote run", "duration", time.Since(startTime))
			},
			context.Background(),
		),
		gocron.WithName("daily-quote"),
	)
	if err != nil {
		return nil, errs.NewConfigError("failed to schedule quote job", err)
	}

	logr.Info("quote job scheduled", "cron", cronExpr)
	return &Scheduler{scheduler: s, log: logr}, nil
}

// Start begins the scheduler's internal ticking.
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.log.Info("scheduler started")
}

// Stop gracefully stops the scheduler, waiting for a running job to
// complete.
func (s *Scheduler) Stop() error {
	s.log.Debug("stopping scheduler")
	if err := s.scheduler.Shutdown(); err != nil {
		s.log.Error("error during scheduler shutdown", "error", err)
		return err
	}
	s.log.Info("scheduler stopped")
	return nil
}
