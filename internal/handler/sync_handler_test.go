package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	gosync "sync"
	"testing"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/internal/source"
	"dashboard-service/internal/sync"
	"dashboard-service/pkg/config"
	"dashboard-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

type stubSource struct {
	products []source.RawProduct
	orders   []source.RawOrder
	fail     bool
}

func (s *stubSource) FetchProducts(context.Context) ([]source.RawProduct, error) {
	if s.fail {
		return nil, source.ErrSourceUnavailable
	}
	return s.products, nil
}

func (s *stubSource) FetchOrders(context.Context) ([]source.RawOrder, error) {
	if s.fail {
		return nil, source.ErrSourceUnavailable
	}
	return s.orders, nil
}

type memProductStore struct {
	mu       gosync.Mutex
	products map[string]model.Product
}

func (s *memProductStore) Upsert(_ context.Context, p model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
	return &p, nil
}

func (s *memProductStore) ExistingIDs(_ context.Context, ids []string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing := make(map[string]struct{})
	for _, id := range ids {
		if _, ok := s.products[id]; ok {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

type memOrderStore struct {
	mu     gosync.Mutex
	orders map[string]model.Order
}

func (s *memOrderStore) Upsert(_ context.Context, o model.Order) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
	return &o, nil
}

func (s *memOrderStore) ReplaceItems(context.Context, string, []model.OrderItem) error {
	return nil
}

type memLogStore struct {
	mu      gosync.Mutex
	entries []model.SyncLog
}

func (s *memLogStore) Create(_ context.Context, entry model.SyncLog) (*model.SyncLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uint(len(s.entries) + 1)
	s.entries = append(s.entries, entry)
	return &entry, nil
}

func (s *memLogStore) LastSuccessful(context.Context) (*model.SyncLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Status == model.SyncStatusSuccess {
			entry := s.entries[i]
			return &entry, nil
		}
	}
	return nil, nil
}

func (s *memLogStore) Recent(_ context.Context, limit int) ([]model.SyncLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var recent []model.SyncLog
	for i := len(s.entries) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, s.entries[i])
	}
	return recent, nil
}

func (s *memLogStore) CountByStatus(context.Context) (total, successful, failed int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
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

func newSyncHandler(src sync.Source) (*SyncHandler, *memLogStore) {
	log := zap.NewNop()
	logs := &memLogStore{}
	engine := sync.NewEngine(
		&memProductStore{products: make(map[string]model.Product)},
		&memOrderStore{orders: make(map[string]model.Order)},
		log,
	)
	tracker := sync.NewTracker(logs, log)
	orchestrator := sync.NewOrchestrator(src, engine, tracker, log)
	return NewSyncHandler(orchestrator, tracker), logs
}

func performRequest(h echo.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestTriggerSyncSuccess(t *testing.T) {
	h, logs := newSyncHandler(&stubSource{
		products: []source.RawProduct{
			{ProductID: 1, Name: "Widget", Category: "Electronics", Price: 9.99, Availability: true},
		},
		orders: []source.RawOrder{
			{OrderID: 10, UserID: 3, Status: "Pending", TotalPrice: 20,
				Items: []source.RawOrderItem{{ProductID: 1, Quantity: 2}}},
		},
	})

	rec := performRequest(h.TriggerSync, http.MethodPost, "/sync")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["productsCount"])
	assert.Equal(t, float64(1), body["ordersCount"])
	assert.Equal(t, float64(2), body["totalRecords"])
	assert.NotEmpty(t, body["duration"])
	assert.NotEmpty(t, body["timestamp"])

	require.Len(t, logs.entries, 1)
	assert.Equal(t, model.SyncStatusSuccess, logs.entries[0].Status)
}

func TestTriggerSyncFailure(t *testing.T) {
	h, logs := newSyncHandler(&stubSource{fail: true})

	rec := performRequest(h.TriggerSync, http.MethodPost, "/sync")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])

	// The failed run is still logged.
	require.Len(t, logs.entries, 1)
	assert.Equal(t, model.SyncStatusFailed, logs.entries[0].Status)
}

func TestSyncInfoHasNoSideEffects(t *testing.T) {
	h, logs := newSyncHandler(&stubSource{})

	rec := performRequest(h.SyncInfo, http.MethodGet, "/sync")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sync API ready")
	assert.Empty(t, logs.entries)
}

func TestSyncLogs(t *testing.T) {
	h, logs := newSyncHandler(&stubSource{})
	completed := time.Now()
	msg := "Orders sync failed: boom"
	logs.entries = []model.SyncLog{
		{ID: 1, SyncType: model.SyncTypeAll, Status: model.SyncStatusSuccess, RecordsProcessed: 5, StartedAt: completed.Add(-time.Minute), CompletedAt: &completed},
		{ID: 2, SyncType: model.SyncTypeAll, Status: model.SyncStatusFailed, ErrorMessage: &msg, StartedAt: completed, CompletedAt: &completed},
	}

	rec := performRequest(h.SyncLogs, http.MethodGet, "/api/sync/logs")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Logs       []model.SyncLog `json:"logs"`
		Statistics sync.Statistics `json:"statistics"`
		LastSync   *model.SyncLog  `json:"last_sync"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Logs, 2)
	assert.Equal(t, int64(2), body.Statistics.Total)
	assert.InDelta(t, 50, body.Statistics.SuccessRate, 0.01)
	require.NotNil(t, body.LastSync)
	assert.Equal(t, model.SyncStatusSuccess, body.LastSync.Status)
}
