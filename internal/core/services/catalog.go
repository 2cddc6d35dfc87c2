package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService loads the catalog once into an immutable snapshot.
// Imports write to the store and are seen by the next process start.
type CatalogService struct {
	store    driven.CatalogStore
	reader   driven.CatalogFileReader
	fallback []domain.FallbackProduct

	mu       sync.Mutex
	snapshot *domain.Catalog
}

// NewCatalogService creates a catalog service.
// store and reader may be nil; a nil store yields an empty primary catalog.
func NewCatalogService(
	store driven.CatalogStore,
	reader driven.CatalogFileReader,
	fallback []domain.FallbackProduct,
) *CatalogService {
	return &CatalogService{
		store:    store,
		reader:   reader,
		fallback: fallback,
	}
}

// Load reads the store and builds the snapshot. A successful load is
// kept; later calls return the same snapshot.
func (s *CatalogService) Load(ctx context.Context) (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil {
		return s.snapshot, nil
	}

	var entries []domain.CatalogEntry
	if s.store != nil {
		var err error
		entries, err = s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		}
	}

	s.snapshot = domain.NewCatalog(entries, s.fallback)
	logger.Info("Catalog loaded: %d entries, %d fallback", len(entries), len(s.fallback))
	return s.snapshot, nil
}

// LoadOrFallback loads the catalog, using only the fallback products when
// the store cannot be read. The fallback snapshot is not kept, so a later
// Load may still succeed.
func (s *CatalogService) LoadOrFallback(ctx context.Context) *domain.Catalog {
	c, err := s.Load(ctx)
	if err != nil {
		logger.Warn("Catalog unavailable, matching against fallback products: %v", err)
		return domain.NewCatalog(nil, s.fallback)
	}
	return c
}

// Snapshot returns the loaded catalog.
func (s *CatalogService) Snapshot() (*domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, domain.ErrCatalogNotLoaded
	}
	return s.snapshot, nil
}

// List returns the stored entries.
func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	if s.store == nil {
		return nil, nil
	}
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	return entries, nil
}

// Import reads entries from a file and saves them to the store.
// Entries without an ID get "item-N" by file position.
func (s *CatalogService) Import(ctx context.Context, path string) (int, error) {
	if s.store == nil || s.reader == nil {
		return 0, fmt.Errorf("%w: catalog import not configured", domain.ErrCatalogUnavailable)
	}

	entries, err := s.reader.Read(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("read catalog file: %w", err)
	}

	valid := make([]domain.CatalogEntry, 0, len(entries))
	for i, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return 0, fmt.Errorf("%w: entry %d has no name", domain.ErrInvalidInput, i+1)
		}
		if e.ID == "" {
			e.ID = fmt.Sprintf("item-%d", i+1)
		}
		valid = append(valid, e)
	}

	if err := s.store.Save(ctx, valid); err != nil {
		return 0, fmt.Errorf("save catalog: %w", err)
	}

	logger.Info("Imported %d catalog entries from %s", len(valid), path)
	return len(valid), nil
}
