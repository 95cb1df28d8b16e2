package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Slug is assigned once at creation and SaleCount
// only moves forward through order placement.
type Product struct {
	ID          string
	Slug        string
	Name        string
	Price       decimal.Decimal
	Category    string
	Collection  string
	Description string
	Image       Image
	SellerID    string
	SaleCount   int64
	Featured    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
