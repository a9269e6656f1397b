package source

import (
	"fmt"
	"strconv"
	"time"

	"dashboard-service/internal/model"

	"github.com/shopspring/decimal"
)

// statusTable maps the source's status vocabulary onto the canonical order
// statuses. Every fallback here is a deliberate rule, not an accident:
// anything absent from the table becomes defaultOrderStatus.
var statusTable = map[string]model.OrderStatus{
	"Shipped":    model.OrderStatusProcessing,
	"Delivered":  model.OrderStatusCompleted,
	"Processing": model.OrderStatusProcessing,
	"Pending":    model.OrderStatusPending,
	"Cancelled":  model.OrderStatusCancelled,
}

const defaultOrderStatus = model.OrderStatusPending

// The source exposes only an availability flag, not inventory counts. These
// placeholder levels are a coarse stock signal, not inventory truth.
const (
	stockWhenAvailable   = 100
	stockWhenUnavailable = 0
)

// TransformProduct normalizes a raw product into its canonical stored shape.
// It is total: any well-formed raw product produces a valid result.
func TransformProduct(raw RawProduct) model.Product {
	stock := stockWhenUnavailable
	if raw.Availability {
		stock = stockWhenAvailable
	}

	return model.Product{
		ID:          strconv.FormatInt(raw.ProductID, 10),
		Name:        raw.Name,
		Category:    raw.Category,
		Price:       decimal.NewFromFloat(raw.Price),
		Rating:      raw.Rating,
		Stock:       &stock,
		Description: raw.Description,
		ImageURL:    raw.Image,
	}
}

// TransformOrder normalizes a raw order into its canonical stored shape,
// including its items. The source omits several fields the model needs, so
// the gaps are filled by explicit rules:
//
//   - unrecognized statuses map to defaultOrderStatus;
//   - the per-item unit price is approximated as total / sum(quantities),
//     or 0 when total quantity is zero;
//   - customer identity is synthesized deterministically from the user id;
//   - the order date is derived from the order id as a stable offset within
//     the 30 days before now (the source carries no date at all).
func TransformOrder(raw RawOrder, now time.Time) model.Order {
	status, ok := statusTable[raw.Status]
	if !ok {
		status = defaultOrderStatus
	}

	totalQuantity := int64(0)
	for _, item := range raw.Items {
		totalQuantity += int64(item.Quantity)
	}

	unitPrice := decimal.Zero
	if totalQuantity > 0 {
		unitPrice = decimal.NewFromFloat(raw.TotalPrice).
			Div(decimal.NewFromInt(totalQuantity)).
			Round(2)
	}

	orderID := strconv.FormatInt(raw.OrderID, 10)

	items := make([]model.OrderItem, 0, len(raw.Items))
	for _, item := range raw.Items {
		items = append(items, model.OrderItem{
			OrderID:   orderID,
			ProductID: strconv.FormatInt(item.ProductID, 10),
			Quantity:  item.Quantity,
			Price:     unitPrice,
		})
	}

	email := fmt.Sprintf("customer%d@example.com", raw.UserID)

	daysAgo := raw.OrderID % 30
	if daysAgo < 0 {
		daysAgo = -daysAgo
	}

	return model.Order{
		ID:            orderID,
		OrderDate:     now.AddDate(0, 0, -int(daysAgo)),
		CustomerName:  fmt.Sprintf("Customer %d", raw.UserID),
		CustomerEmail: &email,
		Status:        status,
		TotalAmount:   decimal.NewFromFloat(raw.TotalPrice),
		Items:         items,
	}
}
