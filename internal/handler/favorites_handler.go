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

// FavoritesHandler handles favorites-related HTTP requests
type FavoritesHandler struct {
	favoritesService *service.FavoritesService
}

// NewFavoritesHandler creates a new FavoritesHandler
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// FavoriteRequest represents the add/toggle favorite request body
type FavoriteRequest struct {
	Product domain.Product `json:"product"`
}

// FavoritesResponse represents the favorites set in API responses
type FavoritesResponse struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// ToggleFavoriteResponse adds the resulting membership to the set
type ToggleFavoriteResponse struct {
	FavoritesResponse
	Favorited bool `json:"favorited"`
}

// GetFavorites handles GET /api/v1/favorites
func (h *FavoritesHandler) GetFavorites(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	favorites := h.favoritesService.GetFavorites(c.Request().Context(), sessionID)
	return c.JSON(http.StatusOK, toFavoritesResponse(favorites))
}

// AddFavorite handles POST /api/v1/favorites
func (h *FavoritesHandler) AddFavorite(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	favorites, err := h.favoritesService.AddFavorite(c.Request().Context(), sessionID, req.Product)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "product.product_id", Message: "Product ID is required"},
			})
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Msg("Failed to add favorite")
		return NewInternalError(c, "Failed to add favorite")
	}

	return c.JSON(http.StatusOK, toFavoritesResponse(favorites))
}

// RemoveFavorite handles DELETE /api/v1/favorites/:productId
func (h *FavoritesHandler) RemoveFavorite(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("productId")

	favorites, err := h.favoritesService.RemoveFavorite(c.Request().Context(), sessionID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Product ID is required", nil)
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", productID).Msg("Failed to remove favorite")
		return NewInternalError(c, "Failed to remove favorite")
	}

	return c.JSON(http.StatusOK, toFavoritesResponse(favorites))
}

// ToggleFavorite handles POST /api/v1/favorites/toggle
func (h *FavoritesHandler) ToggleFavorite(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)

	var req FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	favorites, favorited, err := h.favoritesService.ToggleFavorite(c.Request().Context(), sessionID, req.Product)
	if err != nil {
		if errors.Is(err, domain.ErrProductIDRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "product.product_id", Message: "Product ID is required"},
			})
		}
		log.Error().Err(err).Str("session_id", sessionID).Str("product_id", req.Product.ProductID).Msg("Failed to toggle favorite")
		return NewInternalError(c, "Failed to toggle favorite")
	}

	return c.JSON(http.StatusOK, ToggleFavoriteResponse{
		FavoritesResponse: toFavoritesResponse(favorites),
		Favorited:         favorited,
	})
}

// Helper function to convert domain.Favorites to FavoritesResponse
func toFavoritesResponse(favorites *domain.Favorites) FavoritesResponse {
	items := favorites.Items
	if items == nil {
		items = []domain.Product{}
	}
	return FavoritesResponse{Items: items, Count: len(items)}
}
