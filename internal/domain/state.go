package domain

import "context"

// Well-known session state keys. Values are opaque JSON (or, for the
// modal timestamp and contact fields, plain strings).
const (
	StateKeyCart           = "cart"
	StateKeyFavorites      = "favorites"
	StateKeyRecentlyViewed = "recentlyViewed"
	StateKeyUserEmail      = "user_email"
	StateKeyUserName       = "user_name"

	StateKeyPurchasedPrefix  = "purchased_"
	StateKeyModalShownPrefix = "modal_shown_"
)

// PurchasedKey returns the state key holding the purchase snapshot for a
// product.
func PurchasedKey(productID string) string {
	return StateKeyPurchasedPrefix + productID
}

// ModalShownKey returns the state key holding the last upsell-modal
// display timestamp for a product.
func ModalShownKey(productID string) string {
	return StateKeyModalShownPrefix + productID
}

// StateRepository persists opaque per-session values. Load returns
// ErrStateNotFound for a key that was never written; any other failure is
// a storage error. Save overwrites unconditionally.
type StateRepository interface {
	Load(ctx context.Context, sessionID, key string) ([]byte, error)
	Save(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}
