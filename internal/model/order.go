package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the canonical order status vocabulary. Source-specific
// statuses are mapped onto it during transformation; anything unrecognized
// becomes OrderStatusPending.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents an order synced from the external store API. Orders own
// their items outright: items are deleted and recreated on every re-sync.
type Order struct {
	ID            string          `json:"id" gorm:"type:varchar(64);primarykey"`
	OrderDate     time.Time       `json:"order_date" gorm:"not null;index"`
	CustomerName  string          `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerEmail *string         `json:"customer_email,omitempty" gorm:"type:varchar(255)"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	SyncedAt      time.Time       `json:"synced_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Items         []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. It references a Product by its external
// identifier; items whose product has not been synced are never stored.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primarykey"`
	OrderID   string          `json:"order_id" gorm:"type:varchar(64);not null;index"`
	ProductID string          `json:"product_id" gorm:"type:varchar(64);not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
