package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/rs/zerolog/log"
)

// CatalogHandler proxies product and brand-style requests to the
// upstream recommendation backend
type CatalogHandler struct {
	catalog catalog.API
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogAPI catalog.API) *CatalogHandler {
	return &CatalogHandler{catalog: catalogAPI}
}

// SearchProducts handles GET /api/v1/products/search
func (h *CatalogHandler) SearchProducts(c echo.Context) error {
	params := catalog.SearchParams{
		Category:       c.QueryParam("category"),
		MinPrice:       queryInt(c, "min_price"),
		MaxPrice:       queryInt(c, "max_price"),
		Color:          c.QueryParam("color"),
		Size:           c.QueryParam("size"),
		Brand:          c.QueryParam("brand"),
		Scene:          c.QueryParam("scene"),
		Style:          c.QueryParam("style"),
		Season:         c.QueryParam("season"),
		Keyword:        c.QueryParam("keyword"),
		MinMoteruScore: queryFloat(c, "min_moteru_score"),
		Sort:           c.QueryParam("sort"),
		Page:           queryIntValue(c, "page"),
		Limit:          queryIntValue(c, "limit"),
	}

	result, err := h.catalog.SearchProducts(c.Request().Context(), params)
	if err != nil {
		return h.upstreamError(c, err, "Failed to search products")
	}

	return c.JSON(http.StatusOK, result)
}

// RecommendProducts handles GET /api/v1/products/recommend
func (h *CatalogHandler) RecommendProducts(c echo.Context) error {
	params := catalog.RecommendParams{
		Purpose:        c.QueryParam("purpose"),
		MaxPrice:       queryInt(c, "max_price"),
		Category:       c.QueryParam("category"),
		Scene:          c.QueryParam("scene"),
		Style:          c.QueryParam("style"),
		Season:         c.QueryParam("season"),
		MinMoteruScore: queryFloat(c, "min_moteru_score"),
		BodyType:       c.QueryParam("body_type"),
		Height:         queryInt(c, "height"),
		Weight:         queryInt(c, "weight"),
		Size:           c.QueryParam("size"),
		Fit:            c.QueryParam("fit"),
		Limit:          queryIntValue(c, "limit"),
	}

	result, err := h.catalog.RecommendProducts(c.Request().Context(), params)
	if err != nil {
		return h.upstreamError(c, err, "Failed to recommend products")
	}

	return c.JSON(http.StatusOK, result)
}

// GetProduct handles GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return NewValidationError(c, "Product ID is required", nil)
	}

	raw, err := h.catalog.GetProduct(c.Request().Context(), productID)
	if err != nil {
		if catalog.IsNotFound(err) {
			return NewNotFoundError(c, "Product not found")
		}
		return h.upstreamError(c, err, "Failed to get product")
	}

	return c.JSONBlob(http.StatusOK, raw)
}

// GetRelatedProducts handles GET /api/v1/products/:id/related
func (h *CatalogHandler) GetRelatedProducts(c echo.Context) error {
	productID := c.Param("id")
	if productID == "" {
		return NewValidationError(c, "Product ID is required", nil)
	}

	result, err := h.catalog.GetRelatedProducts(c.Request().Context(), productID, queryIntValue(c, "limit"))
	if err != nil {
		if catalog.IsNotFound(err) {
			return NewNotFoundError(c, "Product not found")
		}
		return h.upstreamError(c, err, "Failed to get related products")
	}

	return c.JSON(http.StatusOK, result)
}

// GetBrandStyles handles GET /api/v1/brand-styles
func (h *CatalogHandler) GetBrandStyles(c echo.Context) error {
	result, err := h.catalog.GetBrandStyles(c.Request().Context())
	if err != nil {
		return h.upstreamError(c, err, "Failed to list brand styles")
	}

	return c.JSON(http.StatusOK, result)
}

// MatchBrandStyle handles GET /api/v1/brand-styles/match
func (h *CatalogHandler) MatchBrandStyle(c echo.Context) error {
	brandStyle := c.QueryParam("brand_style")
	if brandStyle == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "brand_style", Message: "Brand style is required"},
		})
	}

	params := catalog.MatchParams{
		BrandStyle: brandStyle,
		MaxPrice:   queryInt(c, "max_price"),
		Category:   c.QueryParam("category"),
		MinScore:   queryFloat(c, "min_score"),
		Limit:      queryIntValue(c, "limit"),
	}

	result, err := h.catalog.MatchBrandStyle(c.Request().Context(), params)
	if err != nil {
		return h.upstreamError(c, err, "Failed to match brand style")
	}

	return c.JSON(http.StatusOK, result)
}

// upstreamError maps a catalog client error to a response: upstream
// status codes and details pass through, anything else is internal.
func (h *CatalogHandler) upstreamError(c echo.Context, err error, detail string) error {
	var apiErr *catalog.Error
	if errors.As(err, &apiErr) {
		log.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("Upstream catalog error")
		d := apiErr.Detail
		if d == "" {
			d = detail
		}
		return NewUpstreamError(c, apiErr.StatusCode, d)
	}
	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Catalog request failed")
	return NewInternalError(c, detail)
}

func queryInt(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func queryIntValue(c echo.Context, name string) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func queryFloat(c echo.Context, name string) *float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
