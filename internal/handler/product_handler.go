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

// ProductHandler serves read-only product queries. Products are written only
// by the sync pipeline; there is no create/update/delete surface.
type ProductHandler struct {
	products *store.ProductStore
}

// NewProductHandler creates a product handler.
func NewProductHandler(products *store.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// ListProducts handles retrieving all products with optional category filtering
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	category := c.QueryParam("category")
	if category != "" {
		log.Info("Filtering products by category", zap.String("category", category))
	}

	products, err := h.products.List(c.Request().Context(), category)
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	product, err := h.products.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Product not found", zap.String("product_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Product not found",
			})
		}
		log.Error("Failed to get product",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve product",
		})
	}

	log.Info("Product retrieved successfully",
		zap.String("product_id", id),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusOK, product)
}
