package domain

import "time"

// OfferSuppressionWindow is how long the post-purchase upsell offer stays
// hidden after it was last shown to a session.
const OfferSuppressionWindow = 24 * time.Hour

// Upsell offer types accepted by the upstream checkout.
const (
	OfferTypeCourse       = "course"
	OfferTypeConsultation = "consultation"
)

// PurchasedProduct is the snapshot written when a session clicks out to a
// retailer, read back by the upsell page.
type PurchasedProduct struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Category  string  `json:"category,omitempty"`
}

// Contact is the name and email captured by the lead form, reused by the
// upsell purchase flow when the request omits them.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ShouldShowOffer reports whether the upsell offer may be shown given the
// epoch-millis timestamp of its last display. A zero lastShown means it
// was never shown.
func ShouldShowOffer(lastShownMillis int64, now time.Time) bool {
	if lastShownMillis <= 0 {
		return true
	}
	lastShown := time.UnixMilli(lastShownMillis)
	return now.Sub(lastShown) >= OfferSuppressionWindow
}

// ValidateOffer checks an upsell purchase request's offer fields.
func ValidateOffer(offerID, offerType string) error {
	if offerID == "" {
		return ErrOfferIDRequired
	}
	if offerType != OfferTypeCourse && offerType != OfferTypeConsultation {
		return ErrOfferTypeInvalid
	}
	return nil
}
