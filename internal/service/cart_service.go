package service

import (
	"context"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/metrics"
	"github.com/motefuku/motefuku/storefront-api/internal/websocket"
)

// CartService owns the per-session cart: it loads the persisted line
// items, applies a mutation, and persists the full collection before
// returning, so memory and storage never disagree after a completed call.
type CartService struct {
	states    domain.StateRepository
	publisher websocket.EventPublisher
}

// NewCartService creates a new CartService
func NewCartService(states domain.StateRepository, publisher websocket.EventPublisher) *CartService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &CartService{states: states, publisher: publisher}
}

// GetCart returns the session's cart. Missing or corrupt persisted state
// loads as an empty cart, never an error.
func (s *CartService) GetCart(ctx context.Context, sessionID string) *domain.Cart {
	return s.load(ctx, sessionID)
}

// AddToCart merges the product into the cart: an existing line keeps its
// stored metadata and gains quantity, otherwise a new line is appended.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, product domain.Product, quantity int) (*domain.Cart, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	cart := s.load(ctx, sessionID)
	cart.AddItem(product, quantity)
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("add").Inc()
	s.publisher.Publish(sessionID, websocket.CartUpdated(cart))
	return cart, nil
}

// RemoveFromCart deletes the line with the given product id; an absent
// id is a no-op, not an error.
func (s *CartService) RemoveFromCart(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.ErrProductIDRequired
	}

	cart := s.load(ctx, sessionID)
	cart.RemoveItem(productID)
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("remove").Inc()
	s.publisher.Publish(sessionID, websocket.CartUpdated(cart))
	return cart, nil
}

// UpdateQuantity sets a line's quantity exactly. Zero or negative
// removes the line; an unknown product id is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, domain.ErrProductIDRequired
	}

	cart := s.load(ctx, sessionID)
	cart.SetQuantity(productID, quantity)
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("update").Inc()
	s.publisher.Publish(sessionID, websocket.CartUpdated(cart))
	return cart, nil
}

// ClearCart empties the cart unconditionally.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart := &domain.Cart{}
	if err := s.save(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	metrics.CartMutations.WithLabelValues("clear").Inc()
	s.publisher.Publish(sessionID, websocket.CartCleared(cart))
	return cart, nil
}

// The persisted value is the bare line-item array, the same shape the
// original storefront kept under its "cart" storage key.
func (s *CartService) load(ctx context.Context, sessionID string) *domain.Cart {
	var items []domain.CartItem
	loadState(ctx, s.states, sessionID, domain.StateKeyCart, &items)
	return &domain.Cart{Items: items}
}

func (s *CartService) save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return saveState(ctx, s.states, sessionID, domain.StateKeyCart, items)
}
