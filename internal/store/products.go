package store

import (
	"context"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductStore persists products keyed by their external identifier.
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a product store over the given database handle.
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// Upsert writes the product, creating it when absent and overwriting the
// mutable attributes when present. The last-synced timestamp is stamped here.
func (s *ProductStore) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	defer prometheus.TrackDBOperation("upsert_product")(time.Now())

	product.SyncedAt = time.Now()

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "price", "rating", "stock",
			"description", "image_url", "synced_at", "updated_at",
		}),
	}).Create(&product)
	if result.Error != nil {
		return nil, result.Error
	}
	return &product, nil
}

// ExistingIDs returns the subset of ids that are currently stored.
func (s *ProductStore) ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error) {
	defer prometheus.TrackDBOperation("existing_product_ids")(time.Now())

	if len(ids) == 0 {
		return map[string]struct{}{}, nil
	}

	var found []string
	err := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(found))
	for _, id := range found {
		existing[id] = struct{}{}
	}
	return existing, nil
}

// GetByID returns one product or gorm.ErrRecordNotFound.
func (s *ProductStore) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns all products, newest first, optionally filtered by category.
func (s *ProductStore) List(ctx context.Context, category string) ([]model.Product, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
