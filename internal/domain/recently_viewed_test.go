package domain

import (
	"fmt"
	"testing"
)

func TestRecord_PrependsMostRecent(t *testing.T) {
	viewed := &RecentlyViewed{}
	viewed.Record(product("p1", 1000))
	viewed.Record(product("p2", 2000))

	if viewed.Items[0].ProductID != "p2" {
		t.Errorf("Expected most recent first, got %s", viewed.Items[0].ProductID)
	}
}

func TestRecord_DeduplicatesByProductID(t *testing.T) {
	viewed := &RecentlyViewed{}
	viewed.Record(product("p1", 1000))
	viewed.Record(product("p2", 2000))
	viewed.Record(product("p1", 1000))

	if len(viewed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(viewed.Items))
	}
	if viewed.Items[0].ProductID != "p1" {
		t.Errorf("Expected re-viewed product first, got %s", viewed.Items[0].ProductID)
	}
	if viewed.Items[1].ProductID != "p2" {
		t.Errorf("Expected p2 second, got %s", viewed.Items[1].ProductID)
	}
}

func TestRecord_CapsAtMax(t *testing.T) {
	viewed := &RecentlyViewed{}
	for i := 0; i < MaxRecentlyViewed+5; i++ {
		viewed.Record(product(fmt.Sprintf("p%d", i), 1000))
	}

	if len(viewed.Items) != MaxRecentlyViewed {
		t.Fatalf("Expected %d items, got %d", MaxRecentlyViewed, len(viewed.Items))
	}
	// Newest survives, oldest dropped
	if viewed.Items[0].ProductID != fmt.Sprintf("p%d", MaxRecentlyViewed+4) {
		t.Errorf("Expected newest first, got %s", viewed.Items[0].ProductID)
	}
	if viewed.Items[len(viewed.Items)-1].ProductID != "p5" {
		t.Errorf("Expected p5 last, got %s", viewed.Items[len(viewed.Items)-1].ProductID)
	}
}

func TestClearRecentlyViewed(t *testing.T) {
	viewed := &RecentlyViewed{}
	viewed.Record(product("p1", 1000))
	viewed.Clear()

	if len(viewed.Items) != 0 {
		t.Errorf("Expected empty history, got %d items", len(viewed.Items))
	}
}
