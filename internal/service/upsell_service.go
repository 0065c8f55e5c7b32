package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/websocket"
	"github.com/rs/zerolog/log"
)

// UpsellService owns the post-purchase funnel state: the purchase
// snapshot written when a session clicks out to a retailer, the 24-hour
// suppression window for the upsell offer, and the offer purchase call
// to the upstream checkout.
type UpsellService struct {
	states    domain.StateRepository
	catalog   catalog.API
	publisher websocket.EventPublisher
}

// NewUpsellService creates a new UpsellService
func NewUpsellService(states domain.StateRepository, catalogAPI catalog.API, publisher websocket.EventPublisher) *UpsellService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	return &UpsellService{states: states, catalog: catalogAPI, publisher: publisher}
}

// RecordPurchase stores the snapshot the upsell page reads back.
func (s *UpsellService) RecordPurchase(ctx context.Context, sessionID string, purchase domain.PurchasedProduct) error {
	if purchase.ProductID == "" {
		return domain.ErrProductIDRequired
	}
	if err := saveState(ctx, s.states, sessionID, domain.PurchasedKey(purchase.ProductID), purchase); err != nil {
		return err
	}
	s.publisher.Publish(sessionID, websocket.PurchaseRecorded(purchase))
	return nil
}

// GetPurchase returns the stored snapshot for a product, or
// ErrPurchaseNotFound when the session never clicked out on it.
func (s *UpsellService) GetPurchase(ctx context.Context, sessionID, productID string) (*domain.PurchasedProduct, error) {
	if productID == "" {
		return nil, domain.ErrProductIDRequired
	}
	var purchase domain.PurchasedProduct
	if !loadState(ctx, s.states, sessionID, domain.PurchasedKey(productID), &purchase) || purchase.ProductID == "" {
		return nil, domain.ErrPurchaseNotFound
	}
	return &purchase, nil
}

// ShouldShowOffer reports whether the upsell offer for a product may be
// shown: true unless it was shown within the suppression window. An
// unreadable timestamp fails open.
func (s *UpsellService) ShouldShowOffer(ctx context.Context, sessionID, productID string, now time.Time) bool {
	raw, err := s.states.Load(ctx, sessionID, domain.ModalShownKey(productID))
	if err != nil {
		if !errors.Is(err, domain.ErrStateNotFound) {
			log.Warn().Err(err).Str("session_id", sessionID).Str("product_id", productID).Msg("Failed to load offer-shown timestamp")
		}
		return true
	}
	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return true
	}
	return domain.ShouldShowOffer(millis, now)
}

// MarkOfferShown records the display time that starts the suppression
// window. The value is epoch millis as a plain string, the same shape
// the original storefront persisted.
func (s *UpsellService) MarkOfferShown(ctx context.Context, sessionID, productID string, now time.Time) error {
	if productID == "" {
		return domain.ErrProductIDRequired
	}
	value := strconv.FormatInt(now.UnixMilli(), 10)
	return s.states.Save(ctx, sessionID, domain.ModalShownKey(productID), []byte(value))
}

// PurchaseUpsell forwards the offer purchase to the upstream checkout,
// filling email and name from the session's stored contact when the
// request omits them.
func (s *UpsellService) PurchaseUpsell(ctx context.Context, sessionID string, req catalog.UpsellPurchaseRequest) (*catalog.UpsellPurchaseResult, error) {
	if err := domain.ValidateOffer(req.OfferID, req.Type); err != nil {
		return nil, err
	}

	if req.Email == "" {
		req.Email = s.loadContactField(ctx, sessionID, domain.StateKeyUserEmail)
	}
	if req.Name == "" {
		req.Name = s.loadContactField(ctx, sessionID, domain.StateKeyUserName)
	}

	return s.catalog.PurchaseUpsell(ctx, req)
}

// Contact fields are stored as plain strings, not JSON.
func (s *UpsellService) loadContactField(ctx context.Context, sessionID, key string) string {
	raw, err := s.states.Load(ctx, sessionID, key)
	if err != nil {
		return ""
	}
	return string(raw)
}
