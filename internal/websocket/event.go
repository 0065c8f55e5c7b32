package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeUpdated  EventType = "updated"
	EventTypeCleared  EventType = "cleared"
	EventTypeRecorded EventType = "recorded"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeCart           EntityType = "cart"
	EntityTypeFavorites      EntityType = "favorites"
	EntityTypeRecentlyViewed EntityType = "recently_viewed"
	EntityTypePurchase       EntityType = "purchase"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "cart.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "cart"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// CartUpdated creates a cart.updated event
func CartUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCart, payload)
}

// CartCleared creates a cart.cleared event
func CartCleared(payload interface{}) Event {
	return NewEvent(EventTypeCleared, EntityTypeCart, payload)
}

// FavoritesUpdated creates a favorites.updated event
func FavoritesUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeFavorites, payload)
}

// RecentlyViewedRecorded creates a recently_viewed.recorded event
func RecentlyViewedRecorded(payload interface{}) Event {
	return NewEvent(EventTypeRecorded, EntityTypeRecentlyViewed, payload)
}

// RecentlyViewedCleared creates a recently_viewed.cleared event
func RecentlyViewedCleared(payload interface{}) Event {
	return NewEvent(EventTypeCleared, EntityTypeRecentlyViewed, payload)
}

// PurchaseRecorded creates a purchase.recorded event
func PurchaseRecorded(payload interface{}) Event {
	return NewEvent(EventTypeRecorded, EntityTypePurchase, payload)
}
