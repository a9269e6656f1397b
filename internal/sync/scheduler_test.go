package sync

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/source"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSchedulerRunsImmediatelyAndOnTicks(t *testing.T) {
	fix := newOrchestratorFixture(&fakeSource{
		products: []source.RawProduct{rawProduct(1)},
	})
	policy := RetryPolicy{MaxAttempts: 1, Base: time.Millisecond, Factor: 2, Cap: time.Millisecond}
	scheduler := NewScheduler(fix.orch, 20*time.Millisecond, policy, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		fix.logs.mu.Lock()
		defer fix.logs.mu.Unlock()
		return len(fix.logs.entries) >= 2
	}, 2*time.Second, 5*time.Millisecond, "expected an immediate run plus at least one tick")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}

func TestSchedulerRetriesFailedRuns(t *testing.T) {
	src := &fakeSource{
		productsErr: sourceTimeout("/products"),
		ordersErr:   sourceTimeout("/orders"),
	}
	fix := newOrchestratorFixture(src)
	policy := RetryPolicy{MaxAttempts: 3, Base: time.Millisecond, Factor: 2, Cap: 5 * time.Millisecond}
	scheduler := NewScheduler(fix.orch, time.Hour, policy, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	// Every attempt records its own failed SyncLog entry.
	assert.Eventually(t, func() bool {
		fix.logs.mu.Lock()
		defer fix.logs.mu.Unlock()
		return len(fix.logs.entries) == 3
	}, 2*time.Second, 5*time.Millisecond, "expected one log entry per retry attempt")

	cancel()
	<-done
}
