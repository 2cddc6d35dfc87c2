package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure CartService implements the interface.
var _ driving.CartService = (*CartService)(nil)

// localIDPrefix marks cart lines not yet confirmed by the server.
const localIDPrefix = "local-"

// CartService keeps a merged local view of the server cart and applies
// mutations optimistically. Writes are serialised by a mutex; a failed
// mutation restores the view to its pre-attempt snapshot.
type CartService struct {
	api driven.CartAPI

	mu     sync.Mutex
	items  []domain.CartItem
	loaded bool
}

// NewCartService creates a cart service over api.
func NewCartService(api driven.CartAPI) *CartService {
	return &CartService{api: api}
}

// Items fetches the server cart and returns it merged by product name.
func (s *CartService) Items(ctx context.Context) ([]domain.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return cloneItems(s.items), nil
}

// FindByName returns the line whose name equals name or where either
// contains the other. The server cart is fetched once if no line matches.
func (s *CartService) FindByName(ctx context.Context, name string) (*domain.CartItem, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.refreshLocked(ctx); err != nil {
			return nil, err
		}
	}
	if item := findByName(s.items, key); item != nil {
		return item, nil
	}

	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	if item := findByName(s.items, key); item != nil {
		return item, nil
	}
	return nil, fmt.Errorf("cart item %q: %w", name, domain.ErrNotFound)
}

// Add merges the units into the local view, then asks the server to add
// them. On failure the view is rolled back.
func (s *CartService) Add(ctx context.Context, req domain.AddItemRequest) (*domain.CartItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty product name", domain.ErrInvalidInput)
	}
	req.Name = name
	req.Quantity = domain.ClampQuantity(req.Quantity)

	s.mu.Lock()
	defer s.mu.Unlock()

	before := cloneItems(s.items)
	s.items = mergeLocal(s.items, req)
	logger.Debug("Optimistic add: %d x %s", req.Quantity, req.Name)

	created, err := s.api.AddItem(ctx, req)
	if err != nil {
		s.items = before
		logger.Warn("Add %q failed, rolled back: %v", req.Name, err)
		return nil, fmt.Errorf("%w: add %s: %w", domain.ErrMutationFailed, req.Name, err)
	}

	if created != nil && created.ID != "" {
		s.confirmLocal(req.Name, created.ID)
	}
	if err := s.refreshLocked(ctx); err != nil {
		logger.Warn("Cart refresh after add failed: %v", err)
	}

	item := findExact(s.items, strings.ToLower(req.Name))
	if item == nil {
		return &domain.CartItem{Name: req.Name, Quantity: req.Quantity, Price: req.Price}, nil
	}
	return item, nil
}

// Delete removes the line identified by ref, which may be a line ID, any
// server ID of a merged line, or a product name.
func (s *CartService) Delete(ctx context.Context, ref string) (*domain.CartItem, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty id or name", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := resolveTarget(s.items, ref)
	if target == nil || target.IsLocal() {
		// Unknown or not yet persisted: resync and look again.
		if err := s.refreshLocked(ctx); err != nil {
			return nil, err
		}
		target = resolveTarget(s.items, ref)
	}
	if target == nil || target.IsLocal() {
		return nil, fmt.Errorf("cart item %q: %w", ref, domain.ErrNotFound)
	}

	before := cloneItems(s.items)
	s.items = removeLine(s.items, target)

	for i, id := range target.ServerIDs {
		if err := s.api.DeleteItem(ctx, id); err != nil {
			if i == 0 {
				s.items = before
				logger.Warn("Delete %q failed, rolled back: %v", target.Name, err)
			} else {
				s.resyncPartialLocked(ctx, before, target, target.ServerIDs[:i])
				logger.Warn("Delete %q failed after %d of %d rows: %v", target.Name, i, len(target.ServerIDs), err)
			}
			return nil, fmt.Errorf("%w: delete %s: %w", domain.ErrMutationFailed, target.Name, err)
		}
	}

	if err := s.refreshLocked(ctx); err != nil {
		logger.Warn("Cart refresh after delete failed: %v", err)
	}
	return target, nil
}

// Price returns the live unit price of a product.
func (s *CartService) Price(ctx context.Context, name string) (float64, error) {
	return s.api.FetchPrice(ctx, name)
}

func (s *CartService) refreshLocked(ctx context.Context) error {
	raw, err := s.api.FetchItems(ctx)
	if err != nil {
		return fmt.Errorf("fetch cart items: %w", err)
	}
	s.items = MergeCartItems(raw)
	s.loaded = true
	logger.Debug("Cart refreshed: %d lines", len(s.items))
	return nil
}

// resyncPartialLocked reloads the cart after some rows of a merged line
// were deleted. If the reload fails, the pre-attempt snapshot is kept
// without the deleted ids and the next lookup fetches again.
func (s *CartService) resyncPartialLocked(ctx context.Context, before []domain.CartItem, target *domain.CartItem, gone []string) {
	err := s.refreshLocked(ctx)
	if err == nil {
		return
	}
	logger.Warn("Cart refresh after partial delete failed: %v", err)

	s.items = before
	for i := range s.items {
		if s.items[i].ID != target.ID {
			continue
		}
		kept := make([]string, 0, len(s.items[i].ServerIDs))
		for _, id := range s.items[i].ServerIDs {
			if !containsString(gone, id) {
				kept = append(kept, id)
			}
		}
		s.items[i].ServerIDs = kept
		if len(kept) > 0 {
			s.items[i].ID = kept[0]
		}
	}
	s.loaded = false
}

// confirmLocal replaces the stub id of a local line with the server id.
func (s *CartService) confirmLocal(name, serverID string) {
	key := strings.ToLower(name)
	for i := range s.items {
		if strings.ToLower(s.items[i].Name) != key {
			continue
		}
		if strings.HasPrefix(s.items[i].ID, localIDPrefix) {
			s.items[i].ID = serverID
		}
		s.items[i].ServerIDs = append(s.items[i].ServerIDs, serverID)
		return
	}
}

// MergeCartItems merges server lines by lowercase name. Quantities are
// summed, the unit price becomes total value over quantity rounded to two
// decimals, and every server id is kept in first-seen order.
func MergeCartItems(list []domain.CartItem) []domain.CartItem {
	type acc struct {
		item          domain.CartItem
		total         float64
		fallbackPrice float64
	}

	order := make([]string, 0, len(list))
	byName := make(map[string]*acc, len(list))

	for _, it := range list {
		key := strings.ToLower(strings.TrimSpace(it.Name))
		qty := it.Quantity
		if qty < 0 {
			qty = 0
		}

		a, ok := byName[key]
		if !ok {
			name := it.Name
			if name == "" {
				name = key
			}
			a = &acc{
				item:          domain.CartItem{Name: name, Image: it.Image},
				fallbackPrice: it.Price,
			}
			byName[key] = a
			order = append(order, key)
		}

		a.item.Quantity += qty
		a.total += it.Price * float64(qty)
		if it.ID != "" && !containsString(a.item.ServerIDs, it.ID) {
			a.item.ServerIDs = append(a.item.ServerIDs, it.ID)
		}
		if a.item.Image == "" {
			a.item.Image = it.Image
		}
	}

	out := make([]domain.CartItem, 0, len(order))
	for _, key := range order {
		a := byName[key]
		price := a.fallbackPrice
		if a.item.Quantity > 0 {
			price = a.total / float64(a.item.Quantity)
		}
		a.item.Price = math.Round(price*100) / 100
		if len(a.item.ServerIDs) > 0 {
			a.item.ID = a.item.ServerIDs[0]
		}
		out = append(out, a.item)
	}
	return out
}

// mergeLocal adds units to the line with the same name or prepends a
// local stub line.
func mergeLocal(items []domain.CartItem, req domain.AddItemRequest) []domain.CartItem {
	key := strings.ToLower(req.Name)
	out := cloneItems(items)
	for i := range out {
		if strings.ToLower(out[i].Name) == key {
			out[i].Quantity += req.Quantity
			if out[i].Price <= 0 {
				out[i].Price = req.Price
			}
			return out
		}
	}

	stub := domain.CartItem{
		ID:       localIDPrefix + uuid.NewString(),
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
	}
	return append([]domain.CartItem{stub}, out...)
}

func resolveTarget(items []domain.CartItem, ref string) *domain.CartItem {
	for i := range items {
		if items[i].ID == ref {
			c := items[i]
			return &c
		}
	}
	for i := range items {
		if containsString(items[i].ServerIDs, ref) {
			c := items[i]
			return &c
		}
	}
	key := strings.ToLower(ref)
	for i := range items {
		name := strings.ToLower(items[i].Name)
		if name == key || strings.Contains(name, key) {
			c := items[i]
			return &c
		}
	}
	return nil
}

func removeLine(items []domain.CartItem, target *domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID == target.ID {
			continue
		}
		out = append(out, it)
	}
	return out
}

func findByName(items []domain.CartItem, key string) *domain.CartItem {
	for i := range items {
		name := strings.ToLower(items[i].Name)
		if name == "" {
			continue
		}
		if name == key || strings.Contains(name, key) || strings.Contains(key, name) {
			c := items[i]
			return &c
		}
	}
	return nil
}

func findExact(items []domain.CartItem, key string) *domain.CartItem {
	for i := range items {
		if strings.ToLower(items[i].Name) == key {
			c := items[i]
			return &c
		}
	}
	return nil
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	if items == nil {
		return nil
	}
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.ServerIDs != nil {
			out[i].ServerIDs = append([]string(nil), it.ServerIDs...)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the item or product was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrProductNotFound)
}
