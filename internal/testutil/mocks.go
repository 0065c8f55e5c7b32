package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/websocket"
)

// MockStateRepository is an in-memory implementation of domain.StateRepository
type MockStateRepository struct {
	mu     sync.Mutex
	values map[string]map[string][]byte

	// LoadErr and SaveErr force failures when set
	LoadErr error
	SaveErr error
}

// NewMockStateRepository creates a new MockStateRepository
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{
		values: make(map[string]map[string][]byte),
	}
}

// Load retrieves the value stored for a session key
func (m *MockStateRepository) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	session, ok := m.values[sessionID]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	value, ok := session[key]
	if !ok {
		return nil, domain.ErrStateNotFound
	}
	return value, nil
}

// Save stores the value for a session key
func (m *MockStateRepository) Save(ctx context.Context, sessionID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.values[sessionID] == nil {
		m.values[sessionID] = make(map[string][]byte)
	}
	m.values[sessionID][key] = append([]byte(nil), value...)
	return nil
}

// Delete removes the value for a session key
func (m *MockStateRepository) Delete(ctx context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.values[sessionID]; ok {
		delete(session, key)
	}
	return nil
}

// Seed stores a raw value directly (helper for tests)
func (m *MockStateRepository) Seed(sessionID, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values[sessionID] == nil {
		m.values[sessionID] = make(map[string][]byte)
	}
	m.values[sessionID][key] = value
}

// Stored returns the raw persisted value (helper for tests)
func (m *MockStateRepository) Stored(sessionID, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.values[sessionID]
	if !ok {
		return nil, false
	}
	value, ok := session[key]
	return value, ok
}

// MockCatalog is a mock implementation of catalog.API driven by function fields
type MockCatalog struct {
	SearchFn         func(ctx context.Context, params catalog.SearchParams) (*catalog.SearchResult, error)
	RecommendFn      func(ctx context.Context, params catalog.RecommendParams) (*catalog.RecommendResult, error)
	GetProductFn     func(ctx context.Context, productID string) (json.RawMessage, error)
	GetRelatedFn     func(ctx context.Context, productID string, limit int) (*catalog.RelatedResult, error)
	GetBrandStylesFn func(ctx context.Context) (*catalog.BrandStylesResult, error)
	MatchFn          func(ctx context.Context, params catalog.MatchParams) (*catalog.MatchResult, error)
	RegisterEmailFn  func(ctx context.Context, req catalog.EmailRegisterRequest) (*catalog.EmailRegisterResult, error)
	PurchaseUpsellFn func(ctx context.Context, req catalog.UpsellPurchaseRequest) (*catalog.UpsellPurchaseResult, error)
}

var errMockNotConfigured = errors.New("mock catalog call not configured")

func (m *MockCatalog) SearchProducts(ctx context.Context, params catalog.SearchParams) (*catalog.SearchResult, error) {
	if m.SearchFn == nil {
		return nil, errMockNotConfigured
	}
	return m.SearchFn(ctx, params)
}

func (m *MockCatalog) RecommendProducts(ctx context.Context, params catalog.RecommendParams) (*catalog.RecommendResult, error) {
	if m.RecommendFn == nil {
		return nil, errMockNotConfigured
	}
	return m.RecommendFn(ctx, params)
}

func (m *MockCatalog) GetProduct(ctx context.Context, productID string) (json.RawMessage, error) {
	if m.GetProductFn == nil {
		return nil, errMockNotConfigured
	}
	return m.GetProductFn(ctx, productID)
}

func (m *MockCatalog) GetRelatedProducts(ctx context.Context, productID string, limit int) (*catalog.RelatedResult, error) {
	if m.GetRelatedFn == nil {
		return nil, errMockNotConfigured
	}
	return m.GetRelatedFn(ctx, productID, limit)
}

func (m *MockCatalog) GetBrandStyles(ctx context.Context) (*catalog.BrandStylesResult, error) {
	if m.GetBrandStylesFn == nil {
		return nil, errMockNotConfigured
	}
	return m.GetBrandStylesFn(ctx)
}

func (m *MockCatalog) MatchBrandStyle(ctx context.Context, params catalog.MatchParams) (*catalog.MatchResult, error) {
	if m.MatchFn == nil {
		return nil, errMockNotConfigured
	}
	return m.MatchFn(ctx, params)
}

func (m *MockCatalog) RegisterEmail(ctx context.Context, req catalog.EmailRegisterRequest) (*catalog.EmailRegisterResult, error) {
	if m.RegisterEmailFn == nil {
		return nil, errMockNotConfigured
	}
	return m.RegisterEmailFn(ctx, req)
}

func (m *MockCatalog) PurchaseUpsell(ctx context.Context, req catalog.UpsellPurchaseRequest) (*catalog.UpsellPurchaseResult, error) {
	if m.PurchaseUpsellFn == nil {
		return nil, errMockNotConfigured
	}
	return m.PurchaseUpsellFn(ctx, req)
}

// CapturingPublisher records published events (helper for tests)
type CapturingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	SessionID string
	Event     websocket.Event
}

// Publish records the event
func (p *CapturingPublisher) Publish(sessionID string, event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{SessionID: sessionID, Event: event})
}

// Events returns a copy of the captured events
func (p *CapturingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}
