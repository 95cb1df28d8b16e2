package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogFilterRequest payload for POST /products.
type CatalogFilterRequest struct {
	Categories []string `json:"categories"`
	Sort       string   `json:"sort"`
}

// FeatureProductRequest payload for PATCH /products/:slug/featured.
type FeatureProductRequest struct {
	Featured *bool `json:"featured"`
}

// ProductSummary is a list entry. Description is never part of it.
type ProductSummary struct {
	ID         string          `json:"id"`
	Slug       string          `json:"slug"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   string          `json:"category"`
	Collection string          `json:"collection"`
	Image      *ImageResponse  `json:"image,omitempty"`
	SellerID   string          `json:"seller_id,omitempty"`
	SaleCount  int64           `json:"sale_count"`
}

// ProductDetail is the full record returned by GET /product/:slug.
type ProductDetail struct {
	ProductSummary
	Description string    `json:"description"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse pairs a page with the independently counted total.
type ProductListResponse struct {
	Products []ProductSummary `json:"products"`
	Total    int64            `json:"total"`
}
