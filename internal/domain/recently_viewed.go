package domain

// MaxRecentlyViewed caps the recently-viewed list length.
const MaxRecentlyViewed = 10

// RecentlyViewed is a session's view history: most-recent-first, at most
// MaxRecentlyViewed entries, no duplicate product ids.
type RecentlyViewed struct {
	Items []Product `json:"items"`
}

// Record removes any existing entry with the same product id, prepends
// the product, and truncates to the cap. Re-recording a present product
// therefore moves it to the front without growing the list.
func (r *RecentlyViewed) Record(product Product) {
	filtered := make([]Product, 0, len(r.Items)+1)
	filtered = append(filtered, product)
	for _, p := range r.Items {
		if p.ProductID != product.ProductID {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > MaxRecentlyViewed {
		filtered = filtered[:MaxRecentlyViewed]
	}
	r.Items = filtered
}

// Clear empties the history.
func (r *RecentlyViewed) Clear() {
	r.Items = nil
}
