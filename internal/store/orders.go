package store

import (
	"context"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderStore persists orders and their items keyed by the external order
// identifier.
type OrderStore struct {
	db *gorm.DB
}

// NewOrderStore creates an order store over the given database handle.
func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Upsert writes the order header only, creating it when absent and
// overwriting the mutable attributes when present. Items are managed
// separately through ReplaceItems.
func (s *OrderStore) Upsert(ctx context.Context, order model.Order) (*model.Order, error) {
	defer prometheus.TrackDBOperation("upsert_order")(time.Now())

	order.SyncedAt = time.Now()

	result := s.db.WithContext(ctx).Omit("Items").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"order_date", "customer_name", "customer_email",
			"status", "total_amount", "synced_at", "updated_at",
		}),
	}).Create(&order)
	if result.Error != nil {
		return nil, result.Error
	}
	return &order, nil
}

// ReplaceItems swaps the order's full item set: existing rows are deleted,
// the new set is inserted. The two steps are intentionally not transacted;
// a crash in between leaves an empty order that the next sync repairs.
func (s *OrderStore) ReplaceItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	defer prometheus.TrackDBOperation("replace_order_items")(time.Now())

	if err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
	}
	return s.db.WithContext(ctx).Create(&items).Error
}

// GetByID returns one order with its items and their products preloaded.
func (s *OrderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns all orders, most recent order date first, with items and
// products preloaded. A status filter is applied when non-empty.
func (s *OrderStore) List(ctx context.Context, status string) ([]model.Order, error) {
	query := s.db.WithContext(ctx).
		Preload("Items.Product").
		Order("order_date DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
