package model

import "time"

// SyncType identifies which entity types a sync run covered.
type SyncType string

const (
	SyncTypeProducts SyncType = "products"
	SyncTypeOrders   SyncType = "orders"
	SyncTypeAll      SyncType = "all"
)

// SyncStatus is the outcome of a sync run.
type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusPartial SyncStatus = "partial"
	SyncStatusFailed  SyncStatus = "failed"
)

// SyncLog is an append-only record of one synchronization attempt. Rows are
// created exactly once per orchestrator run and never mutated afterwards.
type SyncLog struct {
	ID               uint       `json:"id" gorm:"primarykey"`
	SyncType         SyncType   `json:"sync_type" gorm:"type:varchar(20);not null"`
	Status           SyncStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	RecordsProcessed int        `json:"records_processed" gorm:"not null;default:0"`
	ErrorMessage     *string    `json:"error_message,omitempty" gorm:"type:text"`
	StartedAt        time.Time  `json:"started_at" gorm:"not null"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (SyncLog) TableName() string {
	return "sync_logs"
}
