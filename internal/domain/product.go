package domain

// Product is the descriptor the storefront carries around for a single
// item: enough to render a card and to link out to the retailer. Pricing
// logic treats everything except ProductID, Price and Quantity as opaque.
type Product struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	AffiliateURL string  `json:"affiliate_url,omitempty"`
	URL          string  `json:"url,omitempty"`
	Category     string  `json:"category,omitempty"`
	Brand        string  `json:"brand,omitempty"`
}

// OutboundURL returns the link a purchase click should open: the affiliate
// URL when present, the plain retailer URL otherwise.
func (p *Product) OutboundURL() string {
	if p.AffiliateURL != "" {
		return p.AffiliateURL
	}
	return p.URL
}

func (p *Product) Validate() error {
	if p.ProductID == "" {
		return ErrProductIDRequired
	}
	return nil
}
