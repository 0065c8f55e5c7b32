package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearchProducts_BuildsQueryAndDecodes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products/search" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 1, "page": 1, "limit": 20, "total_pages": 1, "products": [{"product_id": "p1", "name": "Shirt", "price": 2600}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	minPrice := 1000
	result, err := client.SearchProducts(context.Background(), SearchParams{
		Category: "tops",
		MinPrice: &minPrice,
		Sort:     SortPriceAsc,
		Page:     1,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Count != 1 || len(result.Products) != 1 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.Products[0].ProductID != "p1" {
		t.Errorf("Expected p1, got %s", result.Products[0].ProductID)
	}

	for _, want := range []string{"category=tops", "min_price=1000", "sort=price_asc", "page=1"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("Expected query to contain %s, got %s", want, gotQuery)
		}
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Product not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetProduct(context.Background(), "missing")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected IsNotFound, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if apiErr.Detail != "Product not found" {
		t.Errorf("Expected upstream detail, got %q", apiErr.Detail)
	}
}

func TestPurchaseUpsell_PostsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/checkout/upsell" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got %s", ct)
		}
		w.Write([]byte(`{"success": true, "message": "ok", "offer_id": "styling-course", "download_url": "/dl/course.pdf"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.PurchaseUpsell(context.Background(), UpsellPurchaseRequest{
		OfferID: "styling-course",
		Type:    "course",
		Email:   "taro@example.com",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !result.Success || result.DownloadURL != "/dl/course.pdf" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestClient_UpstreamErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("gateway exploded"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetBrandStyles(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "" {
		t.Errorf("Expected empty detail for non-JSON body, got %q", apiErr.Detail)
	}
}
