package domain

import "github.com/shopspring/decimal"

// Discount tiers by total item count. Boundaries belong to the higher
// tier: exactly 5 items is 20%, exactly 3 is 15%.
const (
	DiscountTierLargeMinItems  = 5
	DiscountTierMediumMinItems = 3
	DiscountTierSmallMinItems  = 2

	DiscountRateLarge  = 20
	DiscountRateMedium = 15
	DiscountRateSmall  = 10
)

// FreeShippingThreshold is the discounted total (yen) at which shipping
// becomes free.
const FreeShippingThreshold = 5000

// CartItem is one line in the cart. Quantity is always >= 1; a mutation
// that would drop it to zero removes the line instead.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is the ordered collection of line items for one session. Methods
// are pure; persistence is the service's concern. The zero value is an
// empty cart.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddItem merges by product id: an existing line keeps its stored
// metadata (first write wins) and only gains quantity, otherwise a new
// line is appended. Quantities below one count as one.
func (c *Cart) AddItem(product Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == product.ProductID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: product, Quantity: quantity})
}

// RemoveItem deletes the line with the given product id. Absent ids are a
// no-op, not an error.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets a line's quantity exactly. Zero or negative removes
// the line entirely; an unknown product id is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalPrice is the undiscounted sum of price x quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalItems is the sum of quantities, not the count of distinct lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// DiscountRate returns the discount percentage for the current item
// count, evaluated highest tier first.
func (c *Cart) DiscountRate() int {
	count := c.TotalItems()
	switch {
	case count >= DiscountTierLargeMinItems:
		return DiscountRateLarge
	case count >= DiscountTierMediumMinItems:
		return DiscountRateMedium
	case count >= DiscountTierSmallMinItems:
		return DiscountRateSmall
	default:
		return 0
	}
}

// DiscountedPrice is TotalPrice x (1 - rate/100), unrounded. Callers
// round for display only.
func (c *Cart) DiscountedPrice() decimal.Decimal {
	rate := decimal.NewFromInt(int64(c.DiscountRate()))
	multiplier := decimal.NewFromInt(1).Sub(rate.Div(decimal.NewFromInt(100)))
	return c.TotalPrice().Mul(multiplier)
}

// FreeShippingRemaining is how much more the discounted total needs to
// reach the free-shipping threshold; exactly zero once met, so the UI
// can switch from the progress bar to the success state.
func (c *Cart) FreeShippingRemaining() decimal.Decimal {
	remaining := decimal.NewFromInt(FreeShippingThreshold).Sub(c.DiscountedPrice())
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}
