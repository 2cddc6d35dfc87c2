package services

import (
	"context"
	"sync"
	"testing"

	"github.com/custodia-labs/cartvoice/internal/adapters/driven/lexicon/embedded"
	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
)

// --- Fixtures ---

// testLexicon returns the built-in lexicon.
func testLexicon(t *testing.T) *domain.Lexicon {
	t.Helper()
	lex, err := embedded.New().Load()
	if err != nil {
		t.Fatalf("load lexicon: %v", err)
	}
	return lex
}

// testCatalogEntries is a small primary catalog.
func testCatalogEntries() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{ID: "a1", Name: "Green Apple", Category: "Fruits", Brand: "FarmFresh", Tags: []string{"seb", "fruit"}, Price: 150, Rating: 4.5},
		{ID: "a2", Name: "Apple Juice", Category: "Beverages", Tags: []string{"juice"}, Price: 99, Rating: 4.1},
		{ID: "p1", Name: "Potato", Category: "Vegetables", Price: 30},
	}
}

// newTestInterpreter builds an interpreter over the fallback catalog only.
// online may be nil.
func newTestInterpreter(t *testing.T, online driven.OnlineTranslator) *Interpreter {
	t.Helper()
	lex := testLexicon(t)
	catalog := domain.NewCatalog(nil, domain.DefaultFallbackProducts())
	matcher := NewProductMatcher(catalog, lex, MatcherOptions{})
	return NewInterpreter(NewOfflineTranslator(lex), online, matcher, 0)
}

// --- Mock implementations ---

// mockOnlineTranslator implements driven.OnlineTranslator for testing.
type mockOnlineTranslator struct {
	mu    sync.Mutex
	text  string
	err   error
	block bool
	calls int
}

func (m *mockOnlineTranslator) Translate(ctx context.Context, _ string, _ domain.TranslateOptions) (string, error) {
	m.mu.Lock()
	m.calls++
	block := m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.text, m.err
}

func (m *mockOnlineTranslator) Name() string {
	return "mock"
}

func (m *mockOnlineTranslator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockCartAPI implements driven.CartAPI with injectable failures.
type mockCartAPI struct {
	mu        sync.Mutex
	rows      []domain.CartItem
	nextID    int
	prices    map[string]float64
	fetchErr  error
	addErr    error
	deleteErr error
	priceErr  error
	deleted   []string
	// failIDs fails DeleteItem for specific server ids.
	failIDs map[string]error
}

func (m *mockCartAPI) FetchItems(_ context.Context) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	out := make([]domain.CartItem, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *mockCartAPI) AddItem(_ context.Context, req domain.AddItemRequest) (*domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return nil, m.addErr
	}
	m.nextID++
	row := domain.CartItem{
		ID:       "srv-" + string(rune('0'+m.nextID)),
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	m.rows = append(m.rows, row)
	return &row, nil
}

func (m *mockCartAPI) DeleteItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if err, ok := m.failIDs[id]; ok {
		return err
	}
	m.deleted = append(m.deleted, id)
	for i, row := range m.rows {
		if row.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockCartAPI) FetchPrice(_ context.Context, name string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.priceErr != nil {
		return 0, m.priceErr
	}
	if p, ok := m.prices[name]; ok {
		return p, nil
	}
	return 0, domain.ErrNotFound
}

// mockCatalogReader implements driven.CatalogFileReader for testing.
type mockCatalogReader struct {
	entries []domain.CatalogEntry
	err     error
}

func (m *mockCatalogReader) Read(_ context.Context, _ string) ([]domain.CatalogEntry, error) {
	return m.entries, m.err
}

// mockCatalogStore implements driven.CatalogStore with a failing List.
type mockCatalogStore struct {
	listErr error
	saveErr error
	saved   []domain.CatalogEntry
}

func (m *mockCatalogStore) List(_ context.Context) ([]domain.CatalogEntry, error) {
	return m.saved, m.listErr
}

func (m *mockCatalogStore) Save(_ context.Context, entries []domain.CatalogEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, entries...)
	return nil
}

func (m *mockCatalogStore) Count(_ context.Context) (int, error) {
	return len(m.saved), nil
}

func (m *mockCatalogStore) Close() error {
	return nil
}
