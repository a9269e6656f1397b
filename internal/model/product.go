package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product synced from the external store API.
// The external identifier is kept as the primary key, so re-syncing the same
// product overwrites its mutable attributes in place.
type Product struct {
	ID          string          `json:"id" gorm:"type:varchar(64);primarykey"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Category    string          `json:"category" gorm:"type:varchar(100);not null;index"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Rating      *float64        `json:"rating,omitempty"`
	Stock       *int            `json:"stock,omitempty"`
	Description string          `json:"description" gorm:"type:text"`
	ImageURL    string          `json:"image_url" gorm:"type:varchar(512)"`
	SyncedAt    time.Time       `json:"synced_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
