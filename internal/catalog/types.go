package catalog

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Sort orders accepted by the search endpoint.
const (
	SortPriceAsc        = "price_asc"
	SortPriceDesc       = "price_desc"
	SortMoteruScoreDesc = "moteru_score_desc"
	SortCreatedAtDesc   = "created_at_desc"
)

// Product is the summary shape the upstream returns from search, match
// and recommend listings.
type Product struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	Price        float64  `json:"price"`
	ImageURL     string   `json:"image_url"`
	MoteruScore  *float64 `json:"moteru_score,omitempty"`
	Returnable   *bool    `json:"returnable,omitempty"`
	InStock      *bool    `json:"in_stock,omitempty"`
	URL          string   `json:"url,omitempty"`
	AffiliateURL string   `json:"affiliate_url,omitempty"`
}

// RecommendedProduct adds the upstream's recommendation scoring.
type RecommendedProduct struct {
	Product
	RecommendationScore  float64 `json:"recommendation_score"`
	RecommendationReason string  `json:"recommendation_reason"`
}

// MatchedProduct adds the upstream's brand-style match scoring.
type MatchedProduct struct {
	Product
	StyleScore           float64 `json:"style_score"`
	RecommendationReason string  `json:"recommendation_reason"`
}

// SearchParams are the filters for GET /api/products/search.
type SearchParams struct {
	Category       string
	MinPrice       *int
	MaxPrice       *int
	Color          string
	Size           string
	Brand          string
	Scene          string
	Style          string
	Season         string
	Keyword        string
	MinMoteruScore *float64
	Sort           string
	Page           int
	Limit          int
}

func (p SearchParams) query() url.Values {
	q := url.Values{}
	setStr(q, "category", p.Category)
	setInt(q, "min_price", p.MinPrice)
	setInt(q, "max_price", p.MaxPrice)
	setStr(q, "color", p.Color)
	setStr(q, "size", p.Size)
	setStr(q, "brand", p.Brand)
	setStr(q, "scene", p.Scene)
	setStr(q, "style", p.Style)
	setStr(q, "season", p.Season)
	setStr(q, "keyword", p.Keyword)
	setFloat(q, "min_moteru_score", p.MinMoteruScore)
	setStr(q, "sort", p.Sort)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// SearchResult is the search response envelope.
type SearchResult struct {
	Count      int       `json:"count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
	Products   []Product `json:"products"`
}

// RecommendParams are the filters for GET /api/products/recommend.
type RecommendParams struct {
	Purpose        string
	MaxPrice       *int
	Category       string
	Scene          string
	Style          string
	Season         string
	MinMoteruScore *float64
	BodyType       string
	Height         *int
	Weight         *int
	Size           string
	Fit            string
	Limit          int
}

func (p RecommendParams) query() url.Values {
	q := url.Values{}
	setStr(q, "purpose", p.Purpose)
	setInt(q, "max_price", p.MaxPrice)
	setStr(q, "category", p.Category)
	setStr(q, "scene", p.Scene)
	setStr(q, "style", p.Style)
	setStr(q, "season", p.Season)
	setFloat(q, "min_moteru_score", p.MinMoteruScore)
	setStr(q, "body_type", p.BodyType)
	setInt(q, "height", p.Height)
	setInt(q, "weight", p.Weight)
	setStr(q, "size", p.Size)
	setStr(q, "fit", p.Fit)
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// RecommendResult is the recommend response envelope.
type RecommendResult struct {
	Count    int                  `json:"count"`
	Purpose  string               `json:"purpose,omitempty"`
	MaxPrice *int                 `json:"max_price,omitempty"`
	Products []RecommendedProduct `json:"products"`
}

// BundleOffer is one quantity-discount offer attached to the related
// products response.
type BundleOffer struct {
	Name         string `json:"name"`
	DiscountRate int    `json:"discount_rate"`
	Description  string `json:"description"`
}

// RelatedResult is the related-products response envelope. The product
// documents themselves are backend-owned and pass through untyped.
type RelatedResult struct {
	ProductID                string          `json:"product_id"`
	RelatedProducts          json.RawMessage `json:"related_products"`
	Count                    int             `json:"count"`
	FrequentlyBoughtTogether json.RawMessage `json:"frequently_bought_together"`
	BundleOffers             []BundleOffer   `json:"bundle_offers"`
	FreeShippingThreshold    int             `json:"free_shipping_threshold"`
}

// BrandStyle describes one of the upstream's style archetypes.
type BrandStyle struct {
	Key            string   `json:"key"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	IsRecommended  bool     `json:"is_recommended"`
	Keywords       []string `json:"keywords"`
	DesignFeatures []string `json:"design_features"`
	SimilarBrands  []string `json:"similar_brands"`
}

// BrandStylesResult is the styles listing envelope.
type BrandStylesResult struct {
	Styles []BrandStyle `json:"styles"`
}

// MatchParams are the filters for GET /api/brand-style/match.
type MatchParams struct {
	BrandStyle string
	MaxPrice   *int
	Category   string
	MinScore   *float64
	Limit      int
}

func (p MatchParams) query() url.Values {
	q := url.Values{}
	setStr(q, "brand_style", p.BrandStyle)
	setInt(q, "max_price", p.MaxPrice)
	setStr(q, "category", p.Category)
	setFloat(q, "min_score", p.MinScore)
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// MatchResult is the brand-style match response envelope.
type MatchResult struct {
	BrandStyle string           `json:"brand_style"`
	Count      int              `json:"count"`
	MaxPrice   *int             `json:"max_price,omitempty"`
	MinScore   *float64         `json:"min_score,omitempty"`
	Products   []MatchedProduct `json:"products"`
}

// EmailRegisterRequest is the lead-capture payload.
type EmailRegisterRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Source string `json:"source,omitempty"`
}

// DownloadLinks are the bonus PDFs returned on registration.
type DownloadLinks struct {
	Guide     string `json:"guide"`
	Rules     string `json:"rules"`
	Templates string `json:"templates"`
}

// EmailRegisterResult is the registration response.
type EmailRegisterResult struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	DownloadLinks DownloadLinks `json:"download_links"`
}

// UpsellPurchaseRequest is the post-purchase offer payload.
type UpsellPurchaseRequest struct {
	OfferID string `json:"offer_id"`
	Type    string `json:"type"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// UpsellPurchaseResult is the offer purchase response.
type UpsellPurchaseResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	OfferID     string `json:"offer_id"`
	DownloadURL string `json:"download_url,omitempty"`
}

func setStr(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func setInt(q url.Values, key string, value *int) {
	if value != nil {
		q.Set(key, strconv.Itoa(*value))
	}
}

func setFloat(q url.Values, key string, value *float64) {
	if value != nil {
		q.Set(key, strconv.FormatFloat(*value, 'f', -1, 64))
	}
}
