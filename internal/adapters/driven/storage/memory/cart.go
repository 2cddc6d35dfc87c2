package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

// Ensure Cart implements the interface.
var _ driven.CartAPI = (*Cart)(nil)

// Cart is an in-memory implementation of driven.CartAPI.
// Like a remote cart server it stores one row per add call.
type Cart struct {
	mu     sync.RWMutex
	rows   []domain.CartItem
	prices map[string]float64
}

// NewCart creates an empty cart. prices maps product names to live
// unit prices and may be nil.
func NewCart(prices map[string]float64) *Cart {
	p := make(map[string]float64, len(prices))
	for name, price := range prices {
		p[strings.ToLower(name)] = price
	}
	return &Cart{prices: p}
}

// FetchItems returns the stored rows.
func (c *Cart) FetchItems(_ context.Context) ([]domain.CartItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.rows))
	copy(out, c.rows)
	return out, nil
}

// AddItem appends a row with a new ID.
func (c *Cart) AddItem(_ context.Context, req domain.AddItemRequest) (*domain.CartItem, error) {
	if req.Name == "" || req.Quantity < 1 {
		return nil, fmt.Errorf("%w: name and positive quantity required", domain.ErrInvalidInput)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	row := domain.CartItem{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	c.rows = append(c.rows, row)
	return &row, nil
}

// DeleteItem removes the row with the given ID.
func (c *Cart) DeleteItem(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, row := range c.rows {
		if row.ID == id {
			c.rows = append(c.rows[:i], c.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart row %s: %w", id, domain.ErrNotFound)
}

// FetchPrice returns the configured price for name.
func (c *Cart) FetchPrice(_ context.Context, name string) (float64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	price, ok := c.prices[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("price for %q: %w", name, domain.ErrNotFound)
	}
	return price, nil
}
