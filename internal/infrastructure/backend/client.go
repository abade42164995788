// internal/infrastructure/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/orders"
)

// Client talks to the remote store API. The backend is an opaque REST
// service; this client is the only component that knows its endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new backend API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Backend.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Backend.RequestTimeout,
		},
	}
}

// CreateProductRequest represents the payload for creating a product
type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock int             `json:"stock"`
}

// FetchProducts retrieves the authoritative product list
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, &FetchError{Op: "products", Err: err}
	}
	return products, nil
}

// CreateProduct creates a product on the backend, which assigns its ID
func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (catalog.Product, error) {
	var created catalog.Product
	if err := c.post(ctx, "/products", req, &created); err != nil {
		return catalog.Product{}, &SubmitError{Op: "product", Err: err}
	}
	return created, nil
}

// UpdateProductStock sets the stock quantity of a product
func (c *Client) UpdateProductStock(ctx context.Context, id int64, stock int) (catalog.Product, error) {
	var updated catalog.Product
	payload := map[string]int{"stock": stock}
	if err := c.put(ctx, fmt.Sprintf("/products/%d/stock", id), payload, &updated); err != nil {
		return catalog.Product{}, &SubmitError{Op: "product stock", Err: err}
	}
	return updated, nil
}

// FetchOrders retrieves the confirmed order list
func (c *Client) FetchOrders(ctx context.Context) ([]orders.SaleOrder, error) {
	var sales []orders.SaleOrder
	if err := c.get(ctx, "/sales", &sales); err != nil {
		return nil, &FetchError{Op: "orders", Err: err}
	}
	return sales, nil
}

// CreateOrder submits an order draft. The backend assigns the ID and may
// normalize the creation date.
func (c *Client) CreateOrder(ctx context.Context, draft orders.SaleOrder) (orders.SaleOrder, error) {
	var confirmed orders.SaleOrder
	if err := c.post(ctx, "/sales", draft, &confirmed); err != nil {
		return orders.SaleOrder{}, &SubmitError{Op: "order", Err: err}
	}
	return confirmed, nil
}

// Health checks whether the backend is reachable
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

// HTTP helpers

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
