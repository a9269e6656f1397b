package sync

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler invokes the orchestrator on a fixed interval, applying the retry
// policy around each run. It is the scheduled counterpart of the POST /sync
// trigger: same orchestrator, failure surfaces through retries and logs
// instead of a response payload.
type Scheduler struct {
	orchestrator *Orchestrator
	interval     time.Duration
	policy       RetryPolicy
	log          *zap.Logger
}

// NewScheduler creates a scheduler for the given orchestrator.
func NewScheduler(orchestrator *Orchestrator, interval time.Duration, policy RetryPolicy, log *zap.Logger) *Scheduler {
	return &Scheduler{
		orchestrator: orchestrator,
		interval:     interval,
		policy:       policy,
		log:          log,
	}
}

// Run blocks until the context is cancelled, syncing once immediately and
// then on every interval tick.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info("Sync scheduler started", zap.Duration("interval", s.interval))

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sync scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	err := s.policy.Do(ctx, s.log, func(ctx context.Context) error {
		_, err := s.orchestrator.Run(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Scheduled sync failed after retries",
			zap.Int("attempts", s.policy.MaxAttempts),
			zap.Error(err))
	}
}
