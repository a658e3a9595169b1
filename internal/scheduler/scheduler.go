package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

type Scheduler struct {
	job      Job
	interval time.Duration
}

func New(job Job, interval time.Duration) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("scheduler started",
		slog.String("job", s.job.Name()),
		slog.Duration("interval", s.interval),
	)
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	s.execute(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.execute(ctx)
		case <-ctx.Done():
			slog.Info("scheduler stopped", slog.String("job", s.job.Name()))
			return
		}
	}
}

func (s *Scheduler) execute(ctx context.Context) {
	if err := s.job.Run(ctx); err != nil {
		slog.Error("scheduled job failed",
			slog.String("job", s.job.Name()),
			slog.String("error", err.Error()),
		)
		return
	}

	slog.Debug("scheduled job completed", slog.String("job", s.job.Name()))
}
