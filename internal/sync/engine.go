package sync

import (
	"context"
	"fmt"
	gosync "sync"

	"dashboard-service/internal/model"
	"dashboard-service/prometheus"

	"go.uber.org/zap"
)

// Engine reconciles canonical records against the store: create-if-absent,
// update-if-present, keyed by the external identifier. Order upserts enforce
// referential integrity by dropping items whose product has not been synced.
type Engine struct {
	products ProductStore
	orders   OrderStore
	log      *zap.Logger
}

// NewEngine creates an upsert engine over the given storage ports.
func NewEngine(products ProductStore, orders OrderStore, log *zap.Logger) *Engine {
	return &Engine{
		products: products,
		orders:   orders,
		log:      log,
	}
}

// UpsertProducts writes a batch of products concurrently. Each product is
// keyed by a distinct identifier so no ordering is needed between them.
// Failures are isolated per product: a failed slot is nil in the result and
// the remaining upserts proceed. The returned error aggregates the failure
// count when at least one upsert failed.
func (e *Engine) UpsertProducts(ctx context.Context, products []model.Product) ([]*model.Product, error) {
	results := make([]*model.Product, len(products))

	var wg gosync.WaitGroup
	var mu gosync.Mutex
	failed := 0

	for i, product := range products {
		wg.Add(1)
		go func(i int, product model.Product) {
			defer wg.Done()

			stored, err := e.products.Upsert(ctx, product)
			if err != nil {
				e.log.Error("Failed to upsert product",
					zap.String("product_id", product.ID),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			results[i] = stored
		}(i, product)
	}
	wg.Wait()

	if failed > 0 {
		return results, fmt.Errorf("%d of %d product upserts failed", failed, len(products))
	}
	return results, nil
}

// UpsertOrder writes one order and its items. Items referencing products that
// do not exist yet are dropped; when no items survive, the whole order is
// skipped and (nil, nil) is returned so the batch continues.
func (e *Engine) UpsertOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	existing, err := e.products.ExistingIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("checking product references for order %s: %w", order.ID, err)
	}

	validItems := make([]model.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		if _, ok := existing[item.ProductID]; !ok {
			e.log.Warn("Dropping order item with missing product reference",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID))
			prometheus.ItemsDroppedCounter.Inc()
			continue
		}
		validItems = append(validItems, item)
	}

	if len(validItems) == 0 {
		e.log.Warn("Skipping order with no valid product references",
			zap.String("order_id", order.ID),
			zap.Int("dropped_items", len(order.Items)))
		prometheus.OrdersSkippedCounter.Inc()
		return nil, nil
	}

	header := order
	header.Items = nil
	stored, err := e.orders.Upsert(ctx, header)
	if err != nil {
		return nil, fmt.Errorf("upserting order %s: %w", order.ID, err)
	}

	// Items are replaced wholesale rather than diffed; item history is not
	// preserved. The delete and insert are not wrapped in a transaction, so a
	// crash in between leaves an empty order until the next sync recreates it.
	if err := e.orders.ReplaceItems(ctx, order.ID, validItems); err != nil {
		return nil, fmt.Errorf("replacing items for order %s: %w", order.ID, err)
	}

	return stored, nil
}

// UpsertOrders writes a batch of orders with per-order isolation: one order's
// failure never aborts its siblings. Failed or skipped slots are nil; the
// returned error aggregates the failure count when at least one order failed.
func (e *Engine) UpsertOrders(ctx context.Context, orders []model.Order) ([]*model.Order, error) {
	results := make([]*model.Order, len(orders))

	var wg gosync.WaitGroup
	var mu gosync.Mutex
	failed := 0

	for i, order := range orders {
		wg.Add(1)
		go func(i int, order model.Order) {
			defer wg.Done()

			stored, err := e.UpsertOrder(ctx, order)
			if err != nil {
				e.log.Error("Failed to upsert order",
					zap.String("order_id", order.ID),
					zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			results[i] = stored
		}(i, order)
	}
	wg.Wait()

	if failed > 0 {
		return results, fmt.Errorf("%d of %d order upserts failed", failed, len(orders))
	}
	return results, nil
}
