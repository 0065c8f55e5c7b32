package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/testutil"
)

func testProduct(id string, price float64) domain.Product {
	return domain.Product{ProductID: id, Name: "Item " + id, Price: price}
}

func TestAddToCart_PersistsAndReloads(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewCartService(states, nil)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "session-1", testProduct("p1", 1980), 2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	cart := svc.GetCart(ctx, "session-1")
	if len(cart.Items) != 1 {
		t.Fatalf("Expected 1 line after reload, got %d", len(cart.Items))
	}
	if cart.Items[0].Quantity != 2 {
		t.Errorf("Expected quantity 2, got %d", cart.Items[0].Quantity)
	}
}

func TestAddToCart_PersistsBareItemArray(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewCartService(states, nil)

	if _, err := svc.AddToCart(context.Background(), "session-1", testProduct("p1", 1980), 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	raw, ok := states.Stored("session-1", domain.StateKeyCart)
	if !ok {
		t.Fatal("Expected cart state to be persisted")
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("Expected a bare item array, got %s: %v", raw, err)
	}
	if len(items) != 1 || items[0].ProductID != "p1" {
		t.Errorf("Unexpected persisted items: %s", raw)
	}
}

func TestAddToCart_MissingProductID(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewCartService(states, nil)

	_, err := svc.AddToCart(context.Background(), "session-1", domain.Product{}, 1)
	if !errors.Is(err, domain.ErrProductIDRequired) {
		t.Errorf("Expected ErrProductIDRequired, got %v", err)
	}
}

func TestGetCart_CorruptStateLoadsEmpty(t *testing.T) {
	states := testutil.NewMockStateRepository()
	states.Seed("session-1", domain.StateKeyCart, []byte("{not json"))
	svc := NewCartService(states, nil)

	cart := svc.GetCart(context.Background(), "session-1")
	if len(cart.Items) != 0 {
		t.Errorf("Expected empty cart from corrupt state, got %d lines", len(cart.Items))
	}
}

func TestAddToCart_RecoversFromCorruptState(t *testing.T) {
	states := testutil.NewMockStateRepository()
	states.Seed("session-1", domain.StateKeyCart, []byte("{not json"))
	svc := NewCartService(states, nil)
	ctx := context.Background()

	cart, err := svc.AddToCart(ctx, "session-1", testProduct("p1", 1980), 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(cart.Items))
	}

	// The corrupt value has been overwritten with a valid one
	reloaded := svc.GetCart(ctx, "session-1")
	if len(reloaded.Items) != 1 {
		t.Errorf("Expected corrupt state replaced, got %d lines", len(reloaded.Items))
	}
}

func TestAddToCart_SaveFailureSurfaces(t *testing.T) {
	states := testutil.NewMockStateRepository()
	states.SaveErr = errors.New("storage down")
	svc := NewCartService(states, nil)

	_, err := svc.AddToCart(context.Background(), "session-1", testProduct("p1", 1980), 1)
	if err == nil {
		t.Fatal("Expected save failure to surface")
	}
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewCartService(states, nil)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "session-1", testProduct("p1", 1980), 2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	cart, err := svc.UpdateQuantity(ctx, "session-1", "p1", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("Expected line removed at quantity 0, got %d lines", len(cart.Items))
	}
}

func TestClearCart_PersistsEmptyArray(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewCartService(states, nil)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "session-1", testProduct("p1", 1980), 2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.ClearCart(ctx, "session-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	raw, ok := states.Stored("session-1", domain.StateKeyCart)
	if !ok {
		t.Fatal("Expected cleared cart to be persisted")
	}
	if string(raw) != "[]" {
		t.Errorf("Expected empty array, got %s", raw)
	}
}

func TestCartMutations_PublishEvents(t *testing.T) {
	states := testutil.NewMockStateRepository()
	publisher := &testutil.CapturingPublisher{}
	svc := NewCartService(states, publisher)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "session-1", testProduct("p1", 1980), 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.ClearCart(ctx, "session-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	events := publisher.Events()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Event.Type != "cart.updated" {
		t.Errorf("Expected cart.updated, got %s", events[0].Event.Type)
	}
	if events[1].Event.Type != "cart.cleared" {
		t.Errorf("Expected cart.cleared, got %s", events[1].Event.Type)
	}
	if events[0].SessionID != "session-1" {
		t.Errorf("Expected session-1, got %s", events[0].SessionID)
	}
}

func TestCarts_IsolatedBySession(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewCartService(states, nil)
	ctx := context.Background()

	if _, err := svc.AddToCart(ctx, "session-1", testProduct("p1", 1980), 1); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	other := svc.GetCart(ctx, "session-2")
	if len(other.Items) != 0 {
		t.Errorf("Expected other session's cart empty, got %d lines", len(other.Items))
	}
}
