package handler

import (
	"fmt"
	"net/http"
	"time"

	"dashboard-service/internal/sync"
	"dashboard-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SyncHandler exposes the on-demand sync trigger and the sync history API.
type SyncHandler struct {
	orchestrator *sync.Orchestrator
	tracker      *sync.Tracker
}

// NewSyncHandler creates a sync handler.
func NewSyncHandler(orchestrator *sync.Orchestrator, tracker *sync.Tracker) *SyncHandler {
	return &SyncHandler{orchestrator: orchestrator, tracker: tracker}
}

// TriggerSync handles POST /sync: runs one full cycle synchronously and
// reports the outcome. The caller always gets a response, success or not.
func (h *SyncHandler) TriggerSync(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Manual sync triggered")

	summary, err := h.orchestrator.Run(c.Request().Context())
	if err != nil {
		log.Error("Sync run failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	log.Info("Sync run finished",
		zap.String("status", string(summary.Status)),
		zap.Int("total_records", summary.TotalRecords))

	return c.JSON(http.StatusOK, echo.Map{
		"success":       summary.Success,
		"status":        summary.Status,
		"productsCount": summary.ProductsCount,
		"ordersCount":   summary.OrdersCount,
		"totalRecords":  summary.TotalRecords,
		"duration":      fmt.Sprintf("%dms", summary.Duration.Milliseconds()),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// SyncInfo handles GET /sync: a liveness/description payload with no side
// effects.
func (h *SyncHandler) SyncInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Sync API ready",
		"endpoints": echo.Map{
			"sync":        "POST /sync",
			"description": "Syncs products and orders from the external store API",
		},
	})
}

// SyncLogs handles GET /api/sync/logs: recent history, aggregate statistics
// and the last successful run.
func (h *SyncHandler) SyncLogs(c echo.Context) error {
	log := logger.FromContext(c)
	ctx := c.Request().Context()

	logs, err := h.tracker.RecentLogs(ctx, 10)
	if err != nil {
		log.Error("Failed to fetch sync logs", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sync logs",
		})
	}

	stats, err := h.tracker.GetStatistics(ctx)
	if err != nil {
		log.Error("Failed to compute sync statistics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve sync statistics",
		})
	}

	lastSync, err := h.tracker.LastSyncInfo(ctx)
	if err != nil {
		log.Error("Failed to fetch last sync info", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve last sync info",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"logs":       logs,
		"statistics": stats,
		"last_sync":  lastSync,
	})
}
