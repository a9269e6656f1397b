package handler

import (
	"net/http"

	"dashboard-service/internal/analytics"
	"dashboard-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// DashboardHandler serves the aggregate analytics consumed by the dashboard.
type DashboardHandler struct {
	analytics *analytics.Service
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(analytics *analytics.Service) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// GetDashboard handles GET /api/dashboard: the full dashboard payload.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	log := logger.FromContext(c)

	dashboard, err := h.analytics.GetDashboard(c.Request().Context())
	if err != nil {
		log.Error("Failed to build dashboard data", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve dashboard data",
		})
	}

	log.Info("Dashboard data retrieved",
		zap.Int64("order_count", dashboard.Metrics.OrderCount),
		zap.Int("categories", len(dashboard.ProductsByCategory)))
	return c.JSON(http.StatusOK, dashboard)
}

// GetMetrics handles GET /api/dashboard/metrics: headline numbers only.
func (h *DashboardHandler) GetMetrics(c echo.Context) error {
	log := logger.FromContext(c)

	metrics, err := h.analytics.GetMetrics(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute dashboard metrics", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve metrics",
		})
	}

	return c.JSON(http.StatusOK, metrics)
}
