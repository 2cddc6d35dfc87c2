// Package cartapi provides a REST client for the remote cart service.
//
// Endpoints, relative to the base URL:
//
//	GET    /items          list cart lines
//	POST   /items          add {name, quantity, price}
//	DELETE /items/{id}     remove one line
//	GET    /price?name=    live unit price
package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CartAPI = (*Client)(nil)

// DefaultTimeout bounds each cart request.
const DefaultTimeout = 10 * time.Second

// maxErrorBody bounds how much of an error response is reported.
const maxErrorBody = 512

// Config holds configuration for the cart client.
type Config struct {
	// BaseURL is the cart service root, e.g. http://localhost:5000/api.
	BaseURL string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration
}

// Client talks to the cart REST service.
type Client struct {
	client  *http.Client
	baseURL string
}

// wireItem is a cart line as the server sends it. Servers in the wild use
// either id or _id, and quantity or qty.
type wireItem struct {
	ID       string   `json:"id,omitempty"`
	MongoID  string   `json:"_id,omitempty"`
	Name     string   `json:"name"`
	Quantity *int     `json:"quantity,omitempty"`
	Qty      *int     `json:"qty,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Image    string   `json:"image,omitempty"`
}

func (w wireItem) toDomain() domain.CartItem {
	item := domain.CartItem{
		ID:    w.ID,
		Name:  w.Name,
		Image: w.Image,
	}
	if item.ID == "" {
		item.ID = w.MongoID
	}
	switch {
	case w.Quantity != nil:
		item.Quantity = *w.Quantity
	case w.Qty != nil:
		item.Quantity = *w.Qty
	}
	if w.Price != nil {
		item.Price = *w.Price
	}
	return item
}

// NewClient creates a cart client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: cart base url is required", domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// FetchItems returns the raw server lines.
func (c *Client) FetchItems(ctx context.Context) ([]domain.CartItem, error) {
	resp, err := c.do(ctx, http.MethodGet, "/items", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var wire []wireItem
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}

	items := make([]domain.CartItem, 0, len(wire))
	for _, w := range wire {
		items = append(items, w.toDomain())
	}
	return items, nil
}

// AddItem posts a new line. The server's created line is returned when the
// response carries one.
func (c *Client) AddItem(ctx context.Context, req domain.AddItemRequest) (*domain.CartItem, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/items", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var w wireItem
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode created item: %w", err)
	}
	item := w.toDomain()
	return &item, nil
}

// DeleteItem removes one line by server id.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/items/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// FetchPrice returns the live price for name. The response is either a
// bare number or an object with a price field.
func (c *Client) FetchPrice(ctx context.Context, name string) (float64, error) {
	resp, err := c.do(ctx, http.MethodGet, "/price?name="+url.QueryEscape(name), nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return 0, fmt.Errorf("decode price: %w", err)
	}

	if string(bytes.TrimSpace(raw)) == "null" {
		return 0, fmt.Errorf("price for %q: %w", name, domain.ErrNotFound)
	}

	var price float64
	if err := json.Unmarshal(raw, &price); err == nil {
		return price, nil
	}
	var obj struct {
		Price *float64 `json:"price"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil || obj.Price == nil {
		return 0, fmt.Errorf("price for %q: %w", name, domain.ErrNotFound)
	}
	return *obj.Price, nil
}

// do sends a request and maps non-2xx statuses to errors. 404 maps to
// domain.ErrNotFound. The caller closes the body on success.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return resp, nil
	}

	defer resp.Body.Close()
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	logger.Debug("Cart API %s %s: status %d", method, path, resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("cart api error (status %d): %s", resp.StatusCode, serverMessage(msg))
}

// serverMessage extracts {"message": ...} or {"error": ...} from an error
// body, falling back to the trimmed body text.
func serverMessage(body []byte) string {
	var obj struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Message != "" {
			return obj.Message
		}
		if obj.Error != "" {
			return obj.Error
		}
	}
	return strings.TrimSpace(string(body))
}
