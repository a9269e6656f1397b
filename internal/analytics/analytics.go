package analytics

import (
	"context"
	"time"

	"dashboard-service/internal/model"
	"dashboard-service/prometheus"

	"gorm.io/gorm"
)

// Metrics are the headline dashboard numbers. Cancelled orders are excluded
// from revenue figures; unrated products are excluded from the rating average.
type Metrics struct {
	TotalRevenue         float64 `json:"total_revenue"`
	OrderCount           int64   `json:"order_count"`
	AverageOrderValue    float64 `json:"average_order_value"`
	AverageProductRating float64 `json:"average_product_rating"`
}

// StatusCount is one slice of the orders-by-status chart.
type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// CategoryCount is one bar of the products-by-category chart.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CategoryRevenue is one row of the revenue-by-category insight.
type CategoryRevenue struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	OrderCount int64   `json:"order_count"`
}

// Dashboard bundles everything the dashboard page needs in one payload.
type Dashboard struct {
	Metrics            Metrics           `json:"metrics"`
	OrdersByStatus     []StatusCount     `json:"orders_by_status"`
	ProductsByCategory []CategoryCount   `json:"products_by_category"`
	RecentOrders       []model.Order     `json:"recent_orders"`
	TopProducts        []model.Product   `json:"top_products"`
	RevenueByCategory  []CategoryRevenue `json:"revenue_by_category"`
}

// Service answers read-only aggregate queries over the synced data. It never
// writes; the sync pipeline is the only writer.
type Service struct {
	db *gorm.DB
}

// NewService creates the analytics query service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetMetrics computes the headline dashboard metrics.
func (s *Service) GetMetrics(ctx context.Context) (*Metrics, error) {
	defer prometheus.TrackDBOperation("dashboard_metrics")(time.Now())

	var orderStats struct {
		Revenue float64
		Count   int64
		Average float64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(id) AS count, COALESCE(AVG(total_amount), 0) AS average").
		Where("status <> ?", model.OrderStatusCancelled).
		Scan(&orderStats).Error
	if err != nil {
		return nil, err
	}

	var avgRating float64
	err = s.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("rating IS NOT NULL").
		Scan(&avgRating).Error
	if err != nil {
		return nil, err
	}

	return &Metrics{
		TotalRevenue:         orderStats.Revenue,
		OrderCount:           orderStats.Count,
		AverageOrderValue:    orderStats.Average,
		AverageProductRating: avgRating,
	}, nil
}

// GetOrdersByStatus counts orders per status for the status chart.
func (s *Service) GetOrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := s.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("status AS name, COUNT(id) AS value").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// GetProductsByCategory counts products per category, largest first.
func (s *Service) GetProductsByCategory(ctx context.Context) ([]CategoryCount, error) {
	var counts []CategoryCount
	err := s.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("category, COUNT(id) AS count").
		Group("category").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// GetRecentOrders returns the latest orders with items and products preloaded.
func (s *Service) GetRecentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Order("order_date DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetTopProducts returns the highest priced products.
func (s *Service) GetTopProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).
		Order("price DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetRevenueByCategory computes per-category revenue from order items joined
// against products and non-cancelled orders.
func (s *Service) GetRevenueByCategory(ctx context.Context) ([]CategoryRevenue, error) {
	defer prometheus.TrackDBOperation("revenue_by_category")(time.Now())

	var rows []CategoryRevenue
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			p.category,
			SUM(oi.price * oi.quantity) AS revenue,
			COUNT(DISTINCT o.id) AS order_count
		FROM order_items oi
		INNER JOIN products p ON oi.product_id = p.id
		INNER JOIN orders o ON oi.order_id = o.id
		WHERE o.status <> ?
		GROUP BY p.category
		ORDER BY revenue DESC`, model.OrderStatusCancelled).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDashboard fetches everything the dashboard needs in one call.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	metrics, err := s.GetMetrics(ctx)
	if err != nil {
		return nil, err
	}
	ordersByStatus, err := s.GetOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	productsByCategory, err := s.GetProductsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	recentOrders, err := s.GetRecentOrders(ctx, 5)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.GetTopProducts(ctx, 5)
	if err != nil {
		return nil, err
	}
	revenueByCategory, err := s.GetRevenueByCategory(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Metrics:            *metrics,
		OrdersByStatus:     ordersByStatus,
		ProductsByCategory: productsByCategory,
		RecentOrders:       recentOrders,
		TopProducts:        topProducts,
		RevenueByCategory:  revenueByCategory,
	}, nil
}
