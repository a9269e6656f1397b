package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/internal/source"
)

var errStorage = errors.New("storage write refused")

type fakeProductStore struct {
	mu       gosync.Mutex
	products map[string]model.Product
	failIDs  map[string]bool
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products: make(map[string]model.Product),
		failIDs:  make(map[string]bool),
	}
}

func (f *fakeProductStore) Upsert(_ context.Context, product model.Product) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failIDs[product.ID] {
		return nil, errStorage
	}
	product.SyncedAt = time.Now()
	f.products[product.ID] = product
	return &product, nil
}

func (f *fakeProductStore) ExistingIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := f.products[id]; ok {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

func (f *fakeProductStore) seed(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		f.products[id] = model.Product{ID: id, Name: "Product " + id}
	}
}

type fakeOrderStore struct {
	mu      gosync.Mutex
	orders  map[string]model.Order
	items   map[string][]model.OrderItem
	failIDs map[string]bool
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:  make(map[string]model.Order),
		items:   make(map[string][]model.OrderItem),
		failIDs: make(map[string]bool),
	}
}

func (f *fakeOrderStore) Upsert(_ context.Context, order model.Order) (*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failIDs[order.ID] {
		return nil, errStorage
	}
	order.SyncedAt = time.Now()
	f.orders[order.ID] = order
	return &order, nil
}

func (f *fakeOrderStore) ReplaceItems(_ context.Context, orderID string, items []model.OrderItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items[orderID] = append([]model.OrderItem(nil), items...)
	return nil
}

type fakeSyncLogStore struct {
	mu      gosync.Mutex
	entries []model.SyncLog
	failing bool
}

func (f *fakeSyncLogStore) Create(_ context.Context, entry model.SyncLog) (*model.SyncLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errStorage
	}
	entry.ID = uint(len(f.entries) + 1)
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeSyncLogStore) LastSuccessful(_ context.Context) (*model.SyncLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var last *model.SyncLog
	for i := range f.entries {
		entry := f.entries[i]
		if entry.Status != model.SyncStatusSuccess {
			continue
		}
		if last == nil || (entry.CompletedAt != nil && last.CompletedAt != nil && entry.CompletedAt.After(*last.CompletedAt)) {
			last = &entry
		}
	}
	return last, nil
}

func (f *fakeSyncLogStore) Recent(_ context.Context, limit int) ([]model.SyncLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var recent []model.SyncLog
	for i := len(f.entries) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, f.entries[i])
	}
	return recent, nil
}

func (f *fakeSyncLogStore) CountByStatus(_ context.Context) (total, successful, failed int64, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, entry := range f.entries {
		total++
		switch entry.Status {
		case model.SyncStatusSuccess:
			successful++
		case model.SyncStatusFailed:
			failed++
		}
	}
	return total, successful, failed, nil
}

type fakeSource struct {
	products    []source.RawProduct
	orders      []source.RawOrder
	productsErr error
	ordersErr   error
}

func (f *fakeSource) FetchProducts(context.Context) ([]source.RawProduct, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	return f.products, nil
}

func (f *fakeSource) FetchOrders(context.Context) ([]source.RawOrder, error) {
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	return f.orders, nil
}

func sourceTimeout(path string) error {
	return fmt.Errorf("%w: GET %s: context deadline exceeded", source.ErrSourceUnavailable, path)
}
