package service

import (
	"context"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/websocket"
)

// FavoritesService owns the per-session favorites set, with the same
// load/persist-per-mutation contract as the cart.
type FavoritesService struct {
	states    domain.StateRepository
	publisher websocket.EventPublisher
}

// NewFavoritesService creates a new FavoritesService
func NewFavoritesService(states domain.StateRepository, publisher websocket.EventPublisher) *FavoritesService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &FavoritesService{states: states, publisher: publisher}
}

// GetFavorites returns the session's favorites; missing or corrupt state
// loads as empty.
func (s *FavoritesService) GetFavorites(ctx context.Context, sessionID string) *domain.Favorites {
	return s.load(ctx, sessionID)
}

// AddFavorite adds the product to the favorites set. Idempotent.
func (s *FavoritesService) AddFavorite(ctx context.Context, sessionID string, product domain.Product) (*domain.Favorites, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	favorites := s.load(ctx, sessionID)
	favorites.Add(product)
	if err := s.save(ctx, sessionID, favorites); err != nil {
		return nil, err
	}

	s.publisher.Publish(sessionID, websocket.FavoritesUpdated(favorites))
	return favorites, nil
}

// RemoveFavorite removes the product id; absent ids are a no-op.
func (s *FavoritesService) RemoveFavorite(ctx context.Context, sessionID, productID string) (*domain.Favorites, error) {
	if productID == "" {
		return nil, domain.ErrProductIDRequired
	}

	favorites := s.load(ctx, sessionID)
	favorites.Remove(productID)
	if err := s.save(ctx, sessionID, favorites); err != nil {
		return nil, err
	}

	s.publisher.Publish(sessionID, websocket.FavoritesUpdated(favorites))
	return favorites, nil
}

// ToggleFavorite adds the product when absent and removes it when
// present, returning the favorites and the resulting membership.
func (s *FavoritesService) ToggleFavorite(ctx context.Context, sessionID string, product domain.Product) (*domain.Favorites, bool, error) {
	if err := product.Validate(); err != nil {
		return nil, false, err
	}

	favorites := s.load(ctx, sessionID)
	favorited := favorites.Toggle(product)
	if err := s.save(ctx, sessionID, favorites); err != nil {
		return nil, false, err
	}

	s.publisher.Publish(sessionID, websocket.FavoritesUpdated(favorites))
	return favorites, favorited, nil
}

// IsFavorite reports whether the product id is in the session's favorites.
func (s *FavoritesService) IsFavorite(ctx context.Context, sessionID, productID string) bool {
	return s.load(ctx, sessionID).Contains(productID)
}

func (s *FavoritesService) load(ctx context.Context, sessionID string) *domain.Favorites {
	var items []domain.Product
	loadState(ctx, s.states, sessionID, domain.StateKeyFavorites, &items)
	return &domain.Favorites{Items: items}
}

func (s *FavoritesService) save(ctx context.Context, sessionID string, favorites *domain.Favorites) error {
	items := favorites.Items
	if items == nil {
		items = []domain.Product{}
	}
	return saveState(ctx, s.states, sessionID, domain.StateKeyFavorites, items)
}
