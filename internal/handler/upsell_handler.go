package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/middleware"
	"github.com/motefuku/motefuku/storefront-api/internal/service"
	"github.com/rs/zerolog/log"
)

// UpsellHandler handles the post-purchase funnel HTTP requests
type UpsellHandler struct {
	upsellService *service.UpsellService
}

// NewUpsellHandler creates a new UpsellHandler
func NewUpsellHandler(upsellService *service.UpsellService) *UpsellHandler {
	return &UpsellHandler{upsellService: upsellService}
}

// RecordPurchaseRequest represents the click-out snapshot request body
type RecordPurchaseRequest struct {
	Product domain.PurchasedProduct `json:"product"`
}

// OfferEligibilityResponse represents whether the offer may be shown
type OfferEligibilityResponse struct {
	ProductID string `json:"productId"`
	ShowOffer bool   `json:"showOffer"`
}

// PurchaseUpsellRequest represents the offer purchase request body
type PurchaseUpsellRequest struct {
	OfferID string `json:"offer_id"`
	Type    string `json:"type"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// RecordPurchase handles POST /api/v1/purchases
func (h *UpsellHandler) RecordPurchase(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req RecordPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.upsellService.RecordPurchase(c.Request().Context(), sessionID, req.Product); err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "product.product_id", Message: "Product ID is required"},
			})
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Msg("Failed to record purchase")
		return NewInternalError(c, "Failed to record purchase")
	}

	log.Info().Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Msg("Purchase recorded")

	return c.JSON(http.StatusCreated, req.Product)
}

// GetPurchase handles GET /api/v1/purchases/:productId
func (h *UpsellHandler) GetPurchase(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("productId")

	purchase, err := h.upsellService.GetPurchase(c.Request().Context(), sessionID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrPurchaseNotFound) {
			return NewNotFoundError(c, "Purchase not found")
		}
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Product ID is required", nil)
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", productID).Msg("Failed to get purchase")
		return NewInternalError(c, "Failed to get purchase")
	}

	return c.JSON(http.StatusOK, purchase)
}

// GetOfferEligibility handles GET /api/v1/upsell/:productId/eligibility
func (h *UpsellHandler) GetOfferEligibility(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("productId")
	if productID == "" {
		return NewValidationError(c, "Product ID is required", nil)
	}

	show := h.upsellService.ShouldShowOffer(c.Request().Context(), sessionID, productID, time.Now())

	return c.JSON(http.StatusOK, OfferEligibilityResponse{
		ProductID: productID,
		ShowOffer: show,
	})
}

// MarkOfferShown handles POST /api/v1/upsell/:productId/shown
func (h *UpsellHandler) MarkOfferShown(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("productId")

	if err := h.upsellService.MarkOfferShown(c.Request().Context(), sessionID, productID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Product ID is required", nil)
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", productID).Msg("Failed to mark offer shown")
		return NewInternalError(c, "Failed to mark offer shown")
	}

	return c.NoContent(http.StatusNoContent)
}

// PurchaseUpsell handles POST /api/v1/upsell/purchase
func (h *UpsellHandler) PurchaseUpsell(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req PurchaseUpsellRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.upsellService.PurchaseUpsell(c.Request().Context(), sessionID, catalog.UpsellPurchaseRequest{
		OfferID: req.OfferID,
		Type:    req.Type,
		Email:   req.Email,
		Name:    req.Name,
	})
	if err != nil {
		if errors.Is(err, domain.ErrOfferIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "offer_id", Message: "Offer ID is required"},
			})
		}
		if errors.Is(err, domain.ErrOfferTypeInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "type", Message: "Type must be course or consultation"},
			})
		}
		var apiErr *catalog.Error
		if errors.As(err, &apiErr) {
			log.Warn().Err(err).Str("session_id", sessionID).Str("offer_id", req.OfferID).Msg("Upstream upsell purchase failed")
			return NewUpstreamError(c, apiErr.StatusCode, apiErr.Detail)
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("offer_id", req.OfferID).Msg("Failed to purchase upsell")
		return NewInternalError(c, "Failed to purchase upsell")
	}

	log.Info().Str("session_id", sessionID).Str("offer_id", req.OfferID).Str("type", req.Type).Msg("Upsell purchased")

	return c.JSON(http.StatusOK, result)
}
