package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
// Entries keep their insertion order.
type CatalogStore struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]domain.CatalogEntry
}

// NewCatalogStore creates a catalog store seeded with entries.
func NewCatalogStore(entries ...domain.CatalogEntry) *CatalogStore {
	s := &CatalogStore{
		entries: make(map[string]domain.CatalogEntry),
	}
	_ = s.Save(context.Background(), entries)
	return s
}

// List returns all entries in insertion order.
func (s *CatalogStore) List(_ context.Context) ([]domain.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CatalogEntry, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.entries[id])
	}
	return result, nil
}

// Save stores or replaces entries by ID.
func (s *CatalogStore) Save(_ context.Context, entries []domain.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if _, exists := s.entries[e.ID]; !exists {
			s.order = append(s.order, e.ID)
		}
		if e.Tags != nil {
			e.Tags = append([]string(nil), e.Tags...)
		}
		s.entries[e.ID] = e
	}
	return nil
}

// Count returns the number of entries.
func (s *CatalogStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order), nil
}

// Close is a no-op.
func (s *CatalogStore) Close() error {
	return nil
}
