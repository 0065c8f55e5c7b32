package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/middleware"
	"github.com/motefuku/motefuku/storefront-api/internal/service"
	"github.com/rs/zerolog/log"
)

// RecentlyViewedHandler handles view-history HTTP requests
type RecentlyViewedHandler struct {
	viewedService *service.RecentlyViewedService
}

// NewRecentlyViewedHandler creates a new RecentlyViewedHandler
func NewRecentlyViewedHandler(viewedService *service.RecentlyViewedService) *RecentlyViewedHandler {
	return &RecentlyViewedHandler{viewedService: viewedService}
}

// RecordViewRequest represents the record-view request body
type RecordViewRequest struct {
	Product domain.Product `json:"product"`
}

// RecentlyViewedResponse represents the view history in API responses
type RecentlyViewedResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// GetRecentlyViewed handles GET /api/v1/recently-viewed
func (h *RecentlyViewedHandler) GetRecentlyViewed(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	viewed := h.viewedService.GetRecentlyViewed(c.Request().Context(), sessionID)
	return c.JSON(http.StatusOK, toRecentlyViewedResponse(viewed))
}

// RecordView handles POST /api/v1/recently-viewed
func (h *RecentlyViewedHandler) RecordView(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req RecordViewRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	viewed, err := h.viewedService.RecordView(c.Request().Context(), sessionID, req.Product)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "product.product_id", Message: "Product ID is required"},
			})
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Msg("Failed to record view")
		return NewInternalError(c, "Failed to record view")
	}

	return c.JSON(http.StatusOK, toRecentlyViewedResponse(viewed))
}

// ClearRecentlyViewed handles DELETE /api/v1/recently-viewed
func (h *RecentlyViewedHandler) ClearRecentlyViewed(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	viewed, err := h.viewedService.ClearRecentlyViewed(c.Request().Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear view history")
		return NewInternalError(c, "Failed to clear view history")
	}

	return c.JSON(http.StatusOK, toRecentlyViewedResponse(viewed))
}

// Helper function to convert domain.RecentlyViewed to RecentlyViewedResponse
func toRecentlyViewedResponse(viewed *domain.RecentlyViewed) RecentlyViewedResponse {
	items := viewed.Items
	if items == nil {
		items = []domain.Product{}
	}
	return RecentlyViewedResponse{Items: items, Count: len(items)}
}
