package service

import (
	"context"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/websocket"
)

// RecentlyViewedService owns the per-session view history: capped,
// most-recent-first, de-duplicated by product id.
type RecentlyViewedService struct {
	states    domain.StateRepository
	publisher websocket.EventPublisher
}

// NewRecentlyViewedService creates a new RecentlyViewedService
func NewRecentlyViewedService(states domain.StateRepository, publisher websocket.EventPublisher) *RecentlyViewedService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &RecentlyViewedService{states: states, publisher: publisher}
}

// GetRecentlyViewed returns the session's view history; missing or
// corrupt state loads as empty.
func (s *RecentlyViewedService) GetRecentlyViewed(ctx context.Context, sessionID string) *domain.RecentlyViewed {
	return s.load(ctx, sessionID)
}

// RecordView moves the product to the front of the history, dropping any
// previous entry for the same id and truncating to the cap.
func (s *RecentlyViewedService) RecordView(ctx context.Context, sessionID string, product domain.Product) (*domain.RecentlyViewed, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	viewed := s.load(ctx, sessionID)
	viewed.Record(product)
	if err := s.save(ctx, sessionID, viewed); err != nil {
		return nil, err
	}

	s.publisher.Publish(sessionID, websocket.RecentlyViewedRecorded(viewed))
	return viewed, nil
}

// ClearRecentlyViewed empties the history by dropping the stored key.
func (s *RecentlyViewedService) ClearRecentlyViewed(ctx context.Context, sessionID string) (*domain.RecentlyViewed, error) {
	if err := s.states.Delete(ctx, sessionID, domain.StateKeyRecentlyViewed); err != nil {
		return nil, err
	}

	viewed := &domain.RecentlyViewed{}
	s.publisher.Publish(sessionID, websocket.RecentlyViewedCleared(viewed))
	return viewed, nil
}

func (s *RecentlyViewedService) load(ctx context.Context, sessionID string) *domain.RecentlyViewed {
	var items []domain.Product
	loadState(ctx, s.states, sessionID, domain.StateKeyRecentlyViewed, &items)
	return &domain.RecentlyViewed{Items: items}
}

func (s *RecentlyViewedService) save(ctx context.Context, sessionID string, viewed *domain.RecentlyViewed) error {
	items := viewed.Items
	if items == nil {
		items = []domain.Product{}
	}
	return saveState(ctx, s.states, sessionID, domain.StateKeyRecentlyViewed, items)
}
