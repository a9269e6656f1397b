package sync

import (
	"context"
	"math/rand/v2"
	"time"

	"dashboard-service/pkg/config"

	"go.uber.org/zap"
)

// RetryPolicy is an explicit retry-with-backoff policy applied by callers of
// the orchestrator (the scheduler), not by the orchestrator itself.
type RetryPolicy struct {
	MaxAttempts int
	Base        time.Duration
	Factor      float64
	Cap         time.Duration
	Jitter      bool
}

// RetryPolicyFromConfig builds the policy from the sync configuration.
func RetryPolicyFromConfig(cfg config.SyncConfig) RetryPolicy {
	return RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		Base:        cfg.BackoffBase,
		Factor:      cfg.BackoffFactor,
		Cap:         cfg.BackoffCap,
		Jitter:      true,
	}
}

// Backoff returns the delay before the given retry. Attempts are numbered
// from 1; the first retry waits roughly Base, each further retry multiplies
// by Factor up to Cap. With Jitter the delay is drawn from [d/2, d).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.Base
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Factor)
		if d >= p.Cap {
			d = p.Cap
			break
		}
	}
	if d > p.Cap {
		d = p.Cap
	}

	if p.Jitter && d > 1 {
		half := d / 2
		d = half + rand.N(half)
	}
	return d
}

// Do runs fn up to MaxAttempts times, sleeping the backoff delay between
// attempts. It stops early when fn succeeds or the context is cancelled.
func (p RetryPolicy) Do(ctx context.Context, log *zap.Logger, fn func(context.Context) error) error {
	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		delay := p.Backoff(attempt)
		log.Warn("Attempt failed, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.MaxAttempts),
			zap.Duration("backoff", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}
