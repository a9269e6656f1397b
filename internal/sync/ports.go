package sync

import (
	"context"

	"dashboard-service/internal/model"
	"dashboard-service/internal/source"
)

// ProductStore is the storage port for product upserts. Implementations must
// make each individual upsert atomic with respect to concurrent readers.
type ProductStore interface {
	Upsert(ctx context.Context, product model.Product) (*model.Product, error)
	// ExistingIDs returns which of the given product ids are currently stored.
	ExistingIDs(ctx context.Context, ids []string) (map[string]struct{}, error)
}

// OrderStore is the storage port for order upserts. Upsert writes the order
// header only; ReplaceItems swaps the full item set (delete then insert).
type OrderStore interface {
	Upsert(ctx context.Context, order model.Order) (*model.Order, error)
	ReplaceItems(ctx context.Context, orderID string, items []model.OrderItem) error
}

// SyncLogStore is the storage port for the append-only sync history.
// No update or delete operations are exposed.
type SyncLogStore interface {
	Create(ctx context.Context, entry model.SyncLog) (*model.SyncLog, error)
	LastSuccessful(ctx context.Context) (*model.SyncLog, error)
	Recent(ctx context.Context, limit int) ([]model.SyncLog, error)
	CountByStatus(ctx context.Context) (total, successful, failed int64, err error)
}

// Source is the external data source consumed by the orchestrator.
type Source interface {
	FetchProducts(ctx context.Context) ([]source.RawProduct, error)
	FetchOrders(ctx context.Context) ([]source.RawOrder, error)
}
