package sync

import (
	"context"
	"testing"
	"time"

	"dashboard-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func recordRun(t *testing.T, tracker *Tracker, status model.SyncStatus, completedAt time.Time) {
	t.Helper()
	_, err := tracker.Record(context.Background(), model.SyncLog{
		SyncType:         model.SyncTypeAll,
		Status:           status,
		RecordsProcessed: 5,
		StartedAt:        completedAt.Add(-time.Minute),
		CompletedAt:      &completedAt,
	})
	require.NoError(t, err)
}

func TestStatisticsWithNoLogs(t *testing.T) {
	tracker := NewTracker(&fakeSyncLogStore{}, zap.NewNop())

	stats, err := tracker.GetStatistics(context.Background())

	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.SuccessRate, "rate must be 0 when no runs exist")
}

func TestStatisticsSuccessRate(t *testing.T) {
	tracker := NewTracker(&fakeSyncLogStore{}, zap.NewNop())
	now := time.Now()

	recordRun(t, tracker, model.SyncStatusSuccess, now.Add(-2*time.Hour))
	recordRun(t, tracker, model.SyncStatusSuccess, now.Add(-time.Hour))
	recordRun(t, tracker, model.SyncStatusFailed, now)

	stats, err := tracker.GetStatistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Successful)
	assert.Equal(t, int64(1), stats.Failed)
	assert.InDelta(t, 66.67, stats.SuccessRate, 0.01)
}

func TestLastSyncInfoReturnsLatestSuccess(t *testing.T) {
	tracker := NewTracker(&fakeSyncLogStore{}, zap.NewNop())
	now := time.Now()

	recordRun(t, tracker, model.SyncStatusSuccess, now.Add(-2*time.Hour))
	recordRun(t, tracker, model.SyncStatusSuccess, now.Add(-time.Hour))
	recordRun(t, tracker, model.SyncStatusFailed, now)

	last, err := tracker.LastSyncInfo(context.Background())

	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, model.SyncStatusSuccess, last.Status)
	assert.WithinDuration(t, now.Add(-time.Hour), *last.CompletedAt, time.Second)
}

func TestLastSyncInfoNilWhenNoSuccess(t *testing.T) {
	tracker := NewTracker(&fakeSyncLogStore{}, zap.NewNop())

	recordRun(t, tracker, model.SyncStatusFailed, time.Now())

	last, err := tracker.LastSyncInfo(context.Background())

	require.NoError(t, err)
	assert.Nil(t, last)
}
