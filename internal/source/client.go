package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"dashboard-service/pkg/config"
)

// ErrSourceUnavailable indicates the external store API could not be reached
// or answered with a non-success status. The client never retries; retry
// policy belongs to the caller of the orchestrator.
var ErrSourceUnavailable = errors.New("external source unavailable")

// RawProduct is a product exactly as the external store API returns it.
type RawProduct struct {
	ProductID    int64    `json:"product_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	Rating       *float64 `json:"rating,omitempty"`
	Availability bool     `json:"availability"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
}

// RawOrderItem is an order line as returned by the external store API. The
// source reports quantities but no per-item price.
type RawOrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// RawOrder is an order exactly as the external store API returns it.
type RawOrder struct {
	OrderID    int64          `json:"order_id"`
	UserID     int64          `json:"user_id"`
	Status     string         `json:"status"`
	TotalPrice float64        `json:"total_price"`
	Items      []RawOrderItem `json:"items"`
}

// Client fetches product and order data from the external store API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a source client with the configured base URL and timeout.
func NewClient(cfg config.SourceConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchProducts retrieves all products from the external API in one call.
func (c *Client) FetchProducts(ctx context.Context) ([]RawProduct, error) {
	var products []RawProduct
	if err := c.getJSON(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FetchOrders retrieves all orders from the external API in one call.
func (c *Client) FetchOrders(ctx context.Context) ([]RawOrder, error) {
	var orders []RawOrder
	if err := c.getJSON(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrSourceUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: GET %s returned status %d", ErrSourceUnavailable, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
