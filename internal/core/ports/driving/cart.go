package driving

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// CartService manages the shopping cart.
type CartService interface {
	// Items returns cart lines merged by product name.
	Items(ctx context.Context) ([]domain.CartItem, error)

	// FindByName returns the cart line whose name matches, or domain.ErrNotFound.
	FindByName(ctx context.Context, name string) (*domain.CartItem, error)

	// Add adds units of a product, merging with an existing line.
	Add(ctx context.Context, req domain.AddItemRequest) (*domain.CartItem, error)

	// Delete removes the line identified by ID, server ID or name.
	Delete(ctx context.Context, ref string) (*domain.CartItem, error)

	// Price returns the live unit price of a product.
	Price(ctx context.Context, name string) (float64, error)
}
