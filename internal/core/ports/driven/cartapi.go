package driven

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// CartAPI is the cart mutation collaborator.
// Every operation may fail with a network or server error.
type CartAPI interface {
	// FetchItems returns the raw server cart lines, unmerged.
	FetchItems(ctx context.Context) ([]domain.CartItem, error)

	// AddItem creates a cart line and returns it as stored by the server.
	AddItem(ctx context.Context, req domain.AddItemRequest) (*domain.CartItem, error)

	// DeleteItem removes a cart line by server ID.
	DeleteItem(ctx context.Context, id string) error

	// FetchPrice returns the live unit price for a product name.
	// Returns domain.ErrNotFound if the API has no price for it.
	FetchPrice(ctx context.Context, name string) (float64, error)
}
