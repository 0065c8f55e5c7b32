package domain

// Favorites is a session's saved products, set-like over product id but
// kept in insertion order for stable rendering. The zero value is empty.
type Favorites struct {
	Items []Product `json:"items"`
}

// Add inserts the product unless it is already present. Idempotent.
func (f *Favorites) Add(product Product) {
	if f.Contains(product.ProductID) {
		return
	}
	f.Items = append(f.Items, product)
}

// Remove deletes the product with the given id; absent ids are a no-op.
func (f *Favorites) Remove(productID string) {
	for i := range f.Items {
		if f.Items[i].ProductID == productID {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return
		}
	}
}

// Contains reports whether the product id is favorited.
func (f *Favorites) Contains(productID string) bool {
	for i := range f.Items {
		if f.Items[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Toggle adds the product when absent and removes it when present,
// returning the resulting membership.
func (f *Favorites) Toggle(product Product) bool {
	if f.Contains(product.ProductID) {
		f.Remove(product.ProductID)
		return false
	}
	f.Add(product)
	return true
}
