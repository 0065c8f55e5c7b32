package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/motefuku/motefuku/storefront-api/internal/middleware"
	"github.com/motefuku/motefuku/storefront-api/internal/service"
	"github.com/motefuku/motefuku/storefront-api/internal/testutil"
)

// doRequest runs a handler behind the session middleware with a fixed
// session cookie, so repeated calls hit the same session state.
func doRequest(e *echo.Echo, h echo.HandlerFunc, method, target, sessionID, body string, pathParams map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: sessionID})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for name, value := range pathParams {
		c.SetParamNames(name)
		c.SetParamValues(value)
	}
	if err := middleware.Session()(h)(c); err != nil {
		c.Error(err)
	}
	return rec
}

func TestAddItem_ReturnsDerivedTotals(t *testing.T) {
	e := echo.New()
	states := testutil.NewMockStateRepository()
	cartService := service.NewCartService(states, nil)
	handler := NewCartHandler(cartService)
	sessionID := uuid.New().String()

	reqBody := `{"product": {"product_id": "p1", "name": "Shirt", "price": 2600}, "quantity": 2}`
	rec := doRequest(e, handler.AddItem, http.MethodPost, "/api/v1/cart/items", sessionID, reqBody, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response CartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalItems != 2 {
		t.Errorf("Expected 2 total items, got %d", response.TotalItems)
	}
	if response.DiscountRate != 10 {
		t.Errorf("Expected 10%% discount, got %d%%", response.DiscountRate)
	}
	if response.TotalPrice != "5200" {
		t.Errorf("Expected total 5200, got %s", response.TotalPrice)
	}
	if response.DiscountedPrice != "4680" {
		t.Errorf("Expected discounted 4680, got %s", response.DiscountedPrice)
	}
	if response.FreeShippingRemaining != "320" {
		t.Errorf("Expected 320 remaining, got %s", response.FreeShippingRemaining)
	}
	if response.FreeShippingUnlocked {
		t.Error("Expected free shipping still locked")
	}
}

func TestAddItem_MissingProductID(t *testing.T) {
	e := echo.New()
	states := testutil.NewMockStateRepository()
	handler := NewCartHandler(service.NewCartService(states, nil))
	sessionID := uuid.New().String()

	reqBody := `{"product": {"name": "No ID"}, "quantity": 1}`
	rec := doRequest(e, handler.AddItem, http.MethodPost, "/api/v1/cart/items", sessionID, reqBody, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestGetCart_EmptyForNewSession(t *testing.T) {
	e := echo.New()
	states := testutil.NewMockStateRepository()
	handler := NewCartHandler(service.NewCartService(states, nil))
	sessionID := uuid.New().String()

	rec := doRequest(e, handler.GetCart, http.MethodGet, "/api/v1/cart", sessionID, "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response CartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty items, got %d", len(response.Items))
	}
	if response.TotalPrice != "0" {
		t.Errorf("Expected zero total, got %s", response.TotalPrice)
	}
}

func TestUpdateItem_ZeroQuantityRemoves(t *testing.T) {
	e := echo.New()
	states := testutil.NewMockStateRepository()
	cartService := service.NewCartService(states, nil)
	handler := NewCartHandler(cartService)
	sessionID := uuid.New().String()

	addBody := `{"product": {"product_id": "p1", "name": "Shirt", "price": 2600}, "quantity": 2}`
	doRequest(e, handler.AddItem, http.MethodPost, "/api/v1/cart/items", sessionID, addBody, nil)

	rec := doRequest(e, handler.UpdateItem, http.MethodPut, "/api/v1/cart/items/p1", sessionID,
		`{"quantity": 0}`, map[string]string{"productId": "p1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response CartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected line removed, got %d items", len(response.Items))
	}
}

func TestCartEndpoints_SessionsIsolated(t *testing.T) {
	e := echo.New()
	states := testutil.NewMockStateRepository()
	cartService := service.NewCartService(states, nil)
	handler := NewCartHandler(cartService)

	first := uuid.New().String()
	second := uuid.New().String()

	addBody := `{"product": {"product_id": "p1", "name": "Shirt", "price": 2600}, "quantity": 1}`
	doRequest(e, handler.AddItem, http.MethodPost, "/api/v1/cart/items", first, addBody, nil)

	rec := doRequest(e, handler.GetCart, http.MethodGet, "/api/v1/cart", second, "", nil)

	var response CartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected second session's cart empty, got %d items", len(response.Items))
	}
}
