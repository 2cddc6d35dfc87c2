package tui

import (
	"context"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// MockVoiceService implements driving.VoiceCommandService for TUI tests.
type MockVoiceService struct {
	HandleFunc func(ctx context.Context, raw string) (*domain.CommandReport, error)
}

func (m *MockVoiceService) Handle(ctx context.Context, raw string) (*domain.CommandReport, error) {
	if m.HandleFunc != nil {
		return m.HandleFunc(ctx, raw)
	}
	return &domain.CommandReport{Status: domain.StatusNotUnderstood, Message: "not understood"}, nil
}

func (m *MockVoiceService) Preview(_ context.Context, _ string) (*domain.CommandOutcome, error) {
	return &domain.CommandOutcome{Parsed: domain.UnknownIntent("")}, nil
}

// MockCartService implements driving.CartService for TUI tests.
type MockCartService struct {
	Lines []domain.CartItem
	Err   error
}

func (m *MockCartService) Items(_ context.Context) ([]domain.CartItem, error) {
	return m.Lines, m.Err
}

func (m *MockCartService) FindByName(_ context.Context, _ string) (*domain.CartItem, error) {
	return nil, domain.ErrNotFound
}

func (m *MockCartService) Add(_ context.Context, req domain.AddItemRequest) (*domain.CartItem, error) {
	return &domain.CartItem{Name: req.Name, Quantity: req.Quantity, Price: req.Price}, m.Err
}

func (m *MockCartService) Delete(_ context.Context, _ string) (*domain.CartItem, error) {
	return nil, m.Err
}

func (m *MockCartService) Price(_ context.Context, _ string) (float64, error) {
	return 0, domain.ErrNotFound
}
