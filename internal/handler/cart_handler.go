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

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddCartItemRequest represents the add-to-cart request body
type AddCartItemRequest struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// UpdateQuantityRequest represents the set-quantity request body
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line plus the link a purchase click
// should open (affiliate URL when present).
type CartItemResponse struct {
	domain.CartItem
	OutboundURL string `json:"outbound_url,omitempty"`
}

// CartResponse represents the cart with its derived totals. Money fields
// are decimal strings.
type CartResponse struct {
	Items                 []CartItemResponse `json:"items"`
	TotalItems            int                `json:"totalItems"`
	TotalPrice            string             `json:"totalPrice"`
	DiscountRate          int                `json:"discountRate"`
	DiscountedPrice       string             `json:"discountedPrice"`
	FreeShippingRemaining string             `json:"freeShippingRemaining"`
	FreeShippingUnlocked  bool               `json:"freeShippingUnlocked"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	cart := h.cartService.GetCart(c.Request().Context(), sessionID)
	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	cart, err := h.cartService.AddToCart(c.Request().Context(), sessionID, req.Product, req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "product.product_id", Message: "Product ID is required"},
			})
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Msg("Failed to add cart item")
		return NewInternalError(c, "Failed to add cart item")
	}

	log.Info().Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Int("quantity", req.Quantity).Msg("Cart item added")

	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// UpdateItem handles PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("productId")

	var req UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	cart, err := h.cartService.UpdateQuantity(c.Request().Context(), sessionID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Product ID is required", nil)
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", productID).Msg("Failed to update cart item")
		return NewInternalError(c, "Failed to update cart item")
	}

	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("productId")

	cart, err := h.cartService.RemoveFromCart(c.Request().Context(), sessionID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Product ID is required", nil)
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", productID).Msg("Failed to remove cart item")
		return NewInternalError(c, "Failed to remove cart item")
	}

	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	cart, err := h.cartService.ClearCart(c.Request().Context(), sessionID)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to clear cart")
		return NewInternalError(c, "Failed to clear cart")
	}

	log.Info().Str("session_id", sessionID).Msg("Cart cleared")

	return c.JSON(http.StatusOK, toCartResponse(cart))
}

// Helper function to convert domain.Cart to CartResponse
func toCartResponse(cart *domain.Cart) CartResponse {
	items := make([]CartItemResponse, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemResponse{
			CartItem:    item,
			OutboundURL: item.OutboundURL(),
		}
	}
	return CartResponse{
		Items:                 items,
		TotalItems:            cart.TotalItems(),
		TotalPrice:            cart.TotalPrice().String(),
		DiscountRate:          cart.DiscountRate(),
		DiscountedPrice:       cart.DiscountedPrice().String(),
		FreeShippingRemaining: cart.FreeShippingRemaining().String(),
		FreeShippingUnlocked:  cart.FreeShippingRemaining().IsZero(),
	}
}
