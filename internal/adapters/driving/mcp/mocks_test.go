package mcp

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// mockVoiceService is a mock implementation of driving.VoiceCommandService.
type mockVoiceService struct {
	report  *domain.CommandReport
	outcome *domain.CommandOutcome
	err     error
	handled []string
}

func (m *mockVoiceService) Handle(_ context.Context, raw string) (*domain.CommandReport, error) {
	m.handled = append(m.handled, raw)
	return m.report, m.err
}

func (m *mockVoiceService) Preview(_ context.Context, _ string) (*domain.CommandOutcome, error) {
	return m.outcome, m.err
}

// mockMatcher is a mock implementation of driving.ProductMatcher.
type mockMatcher struct {
	result *domain.MatchResult
	items  []string
}

func (m *mockMatcher) Match(item string) *domain.MatchResult {
	m.items = append(m.items, item)
	return m.result
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	entries []domain.CatalogEntry
	err     error
}

func (m *mockCatalogService) Load(_ context.Context) (*domain.Catalog, error) {
	return domain.NewCatalog(m.entries, nil), m.err
}

func (m *mockCatalogService) Snapshot() (*domain.Catalog, error) {
	return domain.NewCatalog(m.entries, nil), m.err
}

func (m *mockCatalogService) List(_ context.Context) ([]domain.CatalogEntry, error) {
	return m.entries, m.err
}

func (m *mockCatalogService) Import(_ context.Context, _ string) (int, error) {
	return 0, m.err
}

// mockCartService is a mock implementation of driving.CartService.
type mockCartService struct {
	items []domain.CartItem
	err   error
}

func (m *mockCartService) Items(_ context.Context) ([]domain.CartItem, error) {
	return m.items, m.err
}

func (m *mockCartService) FindByName(_ context.Context, _ string) (*domain.CartItem, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCartService) Add(_ context.Context, req domain.AddItemRequest) (*domain.CartItem, error) {
	return &domain.CartItem{Name: req.Name, Quantity: req.Quantity, Price: req.Price}, m.err
}

func (m *mockCartService) Delete(_ context.Context, _ string) (*domain.CartItem, error) {
	return nil, m.err
}

func (m *mockCartService) Price(_ context.Context, _ string) (float64, error) {
	return 0, domain.ErrNotFound
}

// bananaMatch is a fallback match for "bananas".
func bananaMatch() *domain.MatchResult {
	return &domain.MatchResult{
		Source:  domain.MatchSourceFallback,
		Product: domain.Product{ID: "m1", Title: "Fresh Bananas (1 dozen)", Price: 80, Rating: 4.4},
		Score:   3,
	}
}
