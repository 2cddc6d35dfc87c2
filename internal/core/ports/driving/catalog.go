package driving

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// CatalogService manages the product catalog.
type CatalogService interface {
	// Load reads the catalog once. Later calls return the same snapshot.
	Load(ctx context.Context) (*domain.Catalog, error)

	// Snapshot returns the loaded catalog or domain.ErrCatalogNotLoaded.
	Snapshot() (*domain.Catalog, error)

	// List returns the stored entries.
	List(ctx context.Context) ([]domain.CatalogEntry, error)

	// Import reads a JSON or TOML file into the store.
	// It returns the number of entries imported.
	Import(ctx context.Context, path string) (int, error)
}
