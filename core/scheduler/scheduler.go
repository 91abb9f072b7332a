package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runner defines background work to execute on each tick.
type Runner interface {
	Run(ctx context.Context) error
}

// Config holds configuration for the periodic sync trigger.
type Config struct {
	// Enabled gates the scheduler entirely.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// IntervalHours is the time between runs.
	IntervalHours int `mapstructure:"interval_hours" default:"6"`
}

// Scheduler triggers a Runner at a fixed interval until the context is done.
// It guarantees at most one in-flight run: the next tick fires only after the
// previous run has returned.
type Scheduler struct {
	cfg    Config
	runner Runner
	logger *zap.Logger
}

// New creates a scheduler.
func New(cfg Config, runner Runner, logger *zap.Logger) *Scheduler {
	return &Scheduler{cfg: cfg, runner: runner, logger: logger}
}

// Start launches the periodic execution loop. It blocks until ctx is done,
// so callers usually run it in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("Scheduled sync is disabled")
		return
	}

	interval := time.Duration(s.cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	s.logger.Info("Scheduler started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			if err := s.runner.Run(ctx); err != nil {
				s.logger.Error("Scheduled sync failed", zap.Error(err))
			}
		}
	}
}
