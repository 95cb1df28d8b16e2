package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is one requested line.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest payload for POST /order.
type PlaceOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemResponse is one stored line priced at purchase time.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse describes a placed order.
type OrderResponse struct {
	ID        string              `json:"id"`
	BuyerID   string              `json:"buyer_id"`
	Items     []OrderItemResponse `json:"items"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
}
