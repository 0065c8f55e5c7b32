// Package catalog is the typed client for the upstream recommendation
// backend. Responses are consumed verbatim: no caching, no retries, no
// score recomputation — that all lives upstream.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API is the subset of the upstream backend the storefront consumes.
type API interface {
	SearchProducts(ctx context.Context, params SearchParams) (*SearchResult, error)
	RecommendProducts(ctx context.Context, params RecommendParams) (*RecommendResult, error)
	GetProduct(ctx context.Context, productID string) (json.RawMessage, error)
	GetRelatedProducts(ctx context.Context, productID string, limit int) (*RelatedResult, error)
	GetBrandStyles(ctx context.Context) (*BrandStylesResult, error)
	MatchBrandStyle(ctx context.Context, params MatchParams) (*MatchResult, error)
	RegisterEmail(ctx context.Context, req EmailRegisterRequest) (*EmailRegisterResult, error)
	PurchaseUpsell(ctx context.Context, req UpsellPurchaseRequest) (*UpsellPurchaseResult, error)
}

// Client implements API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given upstream base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Error is a non-2xx upstream response carrying the backend's detail body.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("catalog: upstream returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("catalog: upstream returned %d", e.StatusCode)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("catalog: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("catalog: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}

// SearchProducts calls GET /api/products/search.
func (c *Client) SearchProducts(ctx context.Context, params SearchParams) (*SearchResult, error) {
	var result SearchResult
	if err := c.get(ctx, "/api/products/search", params.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RecommendProducts calls GET /api/products/recommend.
func (c *Client) RecommendProducts(ctx context.Context, params RecommendParams) (*RecommendResult, error) {
	var result RecommendResult
	if err := c.get(ctx, "/api/products/recommend", params.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct calls GET /api/products/{id}. The full product document is
// backend-owned, so it passes through untyped.
func (c *Client) GetProduct(ctx context.Context, productID string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/api/products/"+url.PathEscape(productID), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetRelatedProducts calls GET /api/products/{id}/related.
func (c *Client) GetRelatedProducts(ctx context.Context, productID string, limit int) (*RelatedResult, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var result RelatedResult
	if err := c.get(ctx, "/api/products/"+url.PathEscape(productID)+"/related", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBrandStyles calls GET /api/brand-style/styles.
func (c *Client) GetBrandStyles(ctx context.Context) (*BrandStylesResult, error) {
	var result BrandStylesResult
	if err := c.get(ctx, "/api/brand-style/styles", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MatchBrandStyle calls GET /api/brand-style/match.
func (c *Client) MatchBrandStyle(ctx context.Context, params MatchParams) (*MatchResult, error) {
	var result MatchResult
	if err := c.get(ctx, "/api/brand-style/match", params.query(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterEmail calls POST /api/email/register.
func (c *Client) RegisterEmail(ctx context.Context, req EmailRegisterRequest) (*EmailRegisterResult, error) {
	var result EmailRegisterResult
	if err := c.post(ctx, "/api/email/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PurchaseUpsell calls POST /api/checkout/upsell.
func (c *Client) PurchaseUpsell(ctx context.Context, req UpsellPurchaseRequest) (*UpsellPurchaseResult, error) {
	var result UpsellPurchaseResult
	if err := c.post(ctx, "/api/checkout/upsell", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
