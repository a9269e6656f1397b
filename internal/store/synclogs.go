package store

import (
	"context"
	"errors"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/prometheus"

	"gorm.io/gorm"
)

// SyncLogStore persists the append-only sync history.
type SyncLogStore struct {
	db *gorm.DB
}

// NewSyncLogStore creates a sync log store over the given database handle.
func NewSyncLogStore(db *gorm.DB) *SyncLogStore {
	return &SyncLogStore{db: db}
}

// Create appends one sync log entry.
func (s *SyncLogStore) Create(ctx context.Context, entry model.SyncLog) (*model.SyncLog, error) {
	defer prometheus.TrackDBOperation("create_sync_log")(time.Now())

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// LastSuccessful returns the most recent successful sync by completion time,
// or nil when none exists.
func (s *SyncLogStore) LastSuccessful(ctx context.Context) (*model.SyncLog, error) {
	var entry model.SyncLog
	err := s.db.WithContext(ctx).
		Where("status = ?", model.SyncStatusSuccess).
		Order("completed_at DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Recent returns the latest entries, newest first.
func (s *SyncLogStore) Recent(ctx context.Context, limit int) ([]model.SyncLog, error) {
	var entries []model.SyncLog
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// CountByStatus returns the total, successful and failed run counts.
func (s *SyncLogStore) CountByStatus(ctx context.Context) (total, successful, failed int64, err error) {
	logs := s.db.WithContext(ctx).Model(&model.SyncLog{})

	if err = logs.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, 0, err
	}
	if err = logs.Session(&gorm.Session{}).Where("status = ?", model.SyncStatusSuccess).Count(&successful).Error; err != nil {
		return 0, 0, 0, err
	}
	if err = logs.Session(&gorm.Session{}).Where("status = ?", model.SyncStatusFailed).Count(&failed).Error; err != nil {
		return 0, 0, 0, err
	}
	return total, successful, failed, nil
}
