package sync

import (
	"context"

	"dashboard-service/internal/model"

	"go.uber.org/zap"
)

// Statistics summarizes sync history for the dashboard.
type Statistics struct {
	Total       int64   `json:"total"`
	Successful  int64   `json:"successful"`
	Failed      int64   `json:"failed"`
	SuccessRate float64 `json:"success_rate"`
}

// Tracker records sync run outcomes and answers history queries. SyncLog rows
// are append-only: the tracker exposes no update or delete operations.
type Tracker struct {
	store SyncLogStore
	log   *zap.Logger
}

// NewTracker creates a tracker over the given sync log store.
func NewTracker(store SyncLogStore, log *zap.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// Record appends one sync log entry.
func (t *Tracker) Record(ctx context.Context, entry model.SyncLog) (*model.SyncLog, error) {
	created, err := t.store.Create(ctx, entry)
	if err != nil {
		t.log.Error("Failed to record sync log",
			zap.String("status", string(entry.Status)),
			zap.Error(err))
		return nil, err
	}
	return created, nil
}

// LastSyncInfo returns the most recent successful sync, or nil when no sync
// has succeeded yet.
func (t *Tracker) LastSyncInfo(ctx context.Context) (*model.SyncLog, error) {
	return t.store.LastSuccessful(ctx)
}

// RecentLogs returns the latest sync log entries, newest first.
func (t *Tracker) RecentLogs(ctx context.Context, limit int) ([]model.SyncLog, error) {
	return t.store.Recent(ctx, limit)
}

// GetStatistics computes aggregate success metrics over the full history.
// The rate is 0 when no runs have been recorded.
func (t *Tracker) GetStatistics(ctx context.Context) (Statistics, error) {
	total, successful, failed, err := t.store.CountByStatus(ctx)
	if err != nil {
		return Statistics{}, err
	}

	stats := Statistics{
		Total:      total,
		Successful: successful,
		Failed:     failed,
	}
	if total > 0 {
		stats.SuccessRate = float64(successful) / float64(total) * 100
	}
	return stats, nil
}
