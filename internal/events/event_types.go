package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPrincipalRegistered EventType = "principal.registered"
	EventProductCreated      EventType = "product.created"
	EventProductFeatured     EventType = "product.featured"
	EventOrderPlaced         EventType = "order.placed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role domain.Role `json:"role"`
	ID   string      `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, actor Actor, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// PrincipalRegisteredPayload payload.
type PrincipalRegisteredPayload struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	ProductID string `json:"product_id"`
	Slug      string `json:"slug"`
	Category  string `json:"category"`
}

// ProductFeaturedPayload payload.
type ProductFeaturedPayload struct {
	Slug     string `json:"slug"`
	Featured bool   `json:"featured"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID    string          `json:"order_id"`
	ProductIDs []string        `json:"product_ids"`
	Total      decimal.Decimal `json:"total"`
}
