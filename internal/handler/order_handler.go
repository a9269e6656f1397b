package handler

import (
	"errors"
	"net/http"

	"dashboard-service/internal/store"
	"dashboard-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderHandler serves read-only order queries. Orders are written only by the
// sync pipeline.
type OrderHandler struct {
	orders *store.OrderStore
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(orders *store.OrderStore) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// ListOrders handles retrieving all orders with optional status filtering
func (h *OrderHandler) ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	status := c.QueryParam("status")
	if status != "" {
		log.Info("Filtering orders by status", zap.String("status", status))
	}

	orders, err := h.orders.List(c.Request().Context(), status)
	if err != nil {
		log.Error("Failed to list orders", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve orders",
		})
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving a single order by ID with its items
func (h *OrderHandler) GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	order, err := h.orders.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Order not found", zap.String("order_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Order not found",
			})
		}
		log.Error("Failed to get order",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve order",
		})
	}

	log.Info("Order retrieved successfully",
		zap.String("order_id", id),
		zap.Int("item_count", len(order.Items)))
	return c.JSON(http.StatusOK, order)
}
