package driven

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// CatalogStore persists the product catalog.
// The core reads it once at startup; writes happen only through import.
type CatalogStore interface {
	// List returns all entries in catalog order.
	List(ctx context.Context) ([]domain.CatalogEntry, error)

	// Save stores or replaces entries by ID, preserving the given order
	// for new entries.
	Save(ctx context.Context, entries []domain.CatalogEntry) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}

// CatalogFileReader decodes catalog import files.
type CatalogFileReader interface {
	// Read decodes the entries in the file at path.
	Read(ctx context.Context, path string) ([]domain.CatalogEntry, error)
}
