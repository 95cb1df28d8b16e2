package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order, priced at purchase time.
type OrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal returns price * quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order records a buyer purchase.
type Order struct {
	ID        string
	BuyerID   string
	Items     []OrderItem
	CreatedAt time.Time
}

// Total sums every line subtotal.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
