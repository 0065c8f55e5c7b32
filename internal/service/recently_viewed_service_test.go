package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/testutil"
)

func TestRecordView_PersistsAndReloads(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewRecentlyViewedService(states, nil)
	ctx := context.Background()

	if _, err := svc.RecordView(ctx, "session-1", testProduct("p1", 1980)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.RecordView(ctx, "session-1", testProduct("p2", 2980)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	viewed := svc.GetRecentlyViewed(ctx, "session-1")
	if len(viewed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(viewed.Items))
	}
	if viewed.Items[0].ProductID != "p2" {
		t.Errorf("Expected most recent first, got %s", viewed.Items[0].ProductID)
	}
}

func TestRecordView_CapSurvivesReload(t *testing.T) {
	states := testutil.NewMockStateRepository()
	svc := NewRecentlyViewedService(states, nil)
	ctx := context.Background()

	for i := 0; i < domain.MaxRecentlyViewed+3; i++ {
		if _, err := svc.RecordView(ctx, "session-1", testProduct(fmt.Sprintf("p%d", i), 1000)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	viewed := svc.GetRecentlyViewed(ctx, "session-1")
	if len(viewed.Items) != domain.MaxRecentlyViewed {
		t.Errorf("Expected %d items, got %d", domain.MaxRecentlyViewed, len(viewed.Items))
	}
}

func TestClearRecentlyViewed_PublishesEvent(t *testing.T) {
	states := testutil.NewMockStateRepository()
	publisher := &testutil.CapturingPublisher{}
	svc := NewRecentlyViewedService(states, publisher)
	ctx := context.Background()

	if _, err := svc.RecordView(ctx, "session-1", testProduct("p1", 1980)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := svc.ClearRecentlyViewed(ctx, "session-1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	events := publisher.Events()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[1].Event.Type != "recently_viewed.cleared" {
		t.Errorf("Expected recently_viewed.cleared, got %s", events[1].Event.Type)
	}

	viewed := svc.GetRecentlyViewed(ctx, "session-1")
	if len(viewed.Items) != 0 {
		t.Errorf("Expected empty history after clear, got %d", len(viewed.Items))
	}
}
