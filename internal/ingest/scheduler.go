package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
)

// RunState persists the last successful run across restarts so a
// freshly booted process does not hammer every feed again.
type RunState interface {
	LastRun(ctx context.Context, key string) (time.Time, error)
	SetLastRun(ctx context.Context, key string, t time.Time) error
}

const runStateKey = "ingest_last_run"

// Scheduler runs the pipeline on a fixed interval. Each tick checks
// the persisted last-run timestamp first, so overlapping deploys and
// restarts inside the interval stay quiet.
type Scheduler struct {
	pipeline *Pipeline
	state    RunState
	interval time.Duration
	log      *slog.Logger
}

func NewScheduler(pipeline *Pipeline, state RunState, interval time.Duration) *Scheduler {
	return &Scheduler{
		pipeline: pipeline,
		state:    state,
		interval: interval,
		log:      logger.With("scheduler"),
	}
}

// Start blocks until ctx is canceled. The first due check happens
// immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.runIfDue(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runIfDue(ctx)
		}
	}
}

func (s *Scheduler) runIfDue(ctx context.Context) {
	last, err := s.state.LastRun(ctx, runStateKey)
	if err != nil {
		s.log.Error("cannot read last run, skipping tick", "error", err)
		return
	}

	if since := time.Since(last); since < s.interval {
		s.log.Debug("refresh not due", "since_last", since, "interval", s.interval)
		return
	}

	if _, err := s.pipeline.Run(ctx, "", ""); err != nil {
		s.log.Error("scheduled refresh failed", "error", err)
		return
	}
	if err := s.state.SetLastRun(ctx, runStateKey, time.Now()); err != nil {
		s.log.Error("cannot persist last run", "error", err)
	}
}
