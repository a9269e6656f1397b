package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/internal/source"
	"dashboard-service/prometheus"

	"go.uber.org/zap"
)

// RunSummary is the structured result of one sync run, returned to both the
// HTTP trigger and the scheduler.
type RunSummary struct {
	Success       bool             `json:"success"`
	Status        model.SyncStatus `json:"status"`
	ProductsCount int              `json:"products_count"`
	OrdersCount   int              `json:"orders_count"`
	TotalRecords  int              `json:"total_records"`
	Duration      time.Duration    `json:"duration"`
	StartedAt     time.Time        `json:"started_at"`
	CompletedAt   time.Time        `json:"completed_at"`
	ErrorMessage  string           `json:"error_message,omitempty"`
}

// Orchestrator runs one full sync cycle: fetch products, fetch orders, upsert
// both through the engine, then record exactly one SyncLog entry. The two
// phases are individually recovered; a products failure never prevents the
// orders phase from running.
type Orchestrator struct {
	source  Source
	engine  *Engine
	tracker *Tracker
	log     *zap.Logger
	now     func() time.Time
}

// NewOrchestrator wires the adapter, engine and tracker into a runnable unit.
func NewOrchestrator(src Source, engine *Engine, tracker *Tracker, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		source:  src,
		engine:  engine,
		tracker: tracker,
		log:     log,
		now:     time.Now,
	}
}

// Run executes one sync cycle. It always records a SyncLog, then returns the
// run summary. The error is non-nil only when the run failed outright (both
// phases failed, or the log itself could not be written); a partial run
// returns a summary with Success true and the phase error in ErrorMessage.
func (o *Orchestrator) Run(ctx context.Context) (*RunSummary, error) {
	startedAt := o.now()
	o.log.Info("Starting e-commerce data sync")

	var phaseErrors []string

	productsCount, err := o.syncProducts(ctx)
	if err != nil {
		o.log.Error("Products phase failed", zap.Error(err))
		phaseErrors = append(phaseErrors, fmt.Sprintf("Products sync failed: %v", err))
	}

	ordersCount, err := o.syncOrders(ctx)
	if err != nil {
		o.log.Error("Orders phase failed", zap.Error(err))
		phaseErrors = append(phaseErrors, fmt.Sprintf("Orders sync failed: %v", err))
	}

	var status model.SyncStatus
	switch len(phaseErrors) {
	case 0:
		status = model.SyncStatusSuccess
	case 1:
		status = model.SyncStatusPartial
	default:
		status = model.SyncStatusFailed
	}

	completedAt := o.now()
	duration := completedAt.Sub(startedAt)
	totalRecords := productsCount + ordersCount

	var errorMessage *string
	if len(phaseErrors) > 0 {
		joined := strings.Join(phaseErrors, "; ")
		errorMessage = &joined
	}

	if _, err := o.tracker.Record(ctx, model.SyncLog{
		SyncType:         model.SyncTypeAll,
		Status:           status,
		RecordsProcessed: totalRecords,
		ErrorMessage:     errorMessage,
		StartedAt:        startedAt,
		CompletedAt:      &completedAt,
	}); err != nil {
		return nil, fmt.Errorf("recording sync log: %w", err)
	}

	prometheus.RecordSyncRun(string(status), duration)

	summary := &RunSummary{
		Success:       status != model.SyncStatusFailed,
		Status:        status,
		ProductsCount: productsCount,
		OrdersCount:   ordersCount,
		TotalRecords:  totalRecords,
		Duration:      duration,
		StartedAt:     startedAt,
		CompletedAt:   completedAt,
	}
	if errorMessage != nil {
		summary.ErrorMessage = *errorMessage
	}

	o.log.Info("Sync completed",
		zap.String("status", string(status)),
		zap.Int("products", productsCount),
		zap.Int("orders", ordersCount),
		zap.Duration("duration", duration))

	if status == model.SyncStatusFailed {
		return summary, fmt.Errorf("sync failed: %s", summary.ErrorMessage)
	}
	return summary, nil
}

func (o *Orchestrator) syncProducts(ctx context.Context) (int, error) {
	o.log.Info("Fetching products from external API")
	raw, err := o.source.FetchProducts(ctx)
	if err != nil {
		return 0, err
	}
	o.log.Info("Fetched products", zap.Int("count", len(raw)))

	products := make([]model.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, source.TransformProduct(r))
	}

	if _, err := o.engine.UpsertProducts(ctx, products); err != nil {
		return 0, err
	}

	prometheus.RecordSyncedRecords("products", len(products))
	o.log.Info("Upserted products", zap.Int("count", len(products)))
	return len(products), nil
}

func (o *Orchestrator) syncOrders(ctx context.Context) (int, error) {
	o.log.Info("Fetching orders from external API")
	raw, err := o.source.FetchOrders(ctx)
	if err != nil {
		return 0, err
	}
	o.log.Info("Fetched orders", zap.Int("count", len(raw)))

	now := o.now()
	orders := make([]model.Order, 0, len(raw))
	for _, r := range raw {
		orders = append(orders, source.TransformOrder(r, now))
	}

	if _, err := o.engine.UpsertOrders(ctx, orders); err != nil {
		return 0, err
	}

	prometheus.RecordSyncedRecords("orders", len(orders))
	o.log.Info("Upserted orders", zap.Int("count", len(orders)))
	return len(orders), nil
}
