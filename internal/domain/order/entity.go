package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineRequest is the caller's wish for a single line: it names a product
// and a quantity, nothing else. Prices and names are snapshotted by the
// assembler at reservation time.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Line is one itemized row of a placed order. Immutable after creation;
// it exists only as part of its owning Order.
type Line struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Total       decimal.Decimal
}

// Order is the persisted aggregate. Lines keep the request order.
// Total == Subtotal - Discount, and Discount == sum of line discounts.
type Order struct {
	ID         string
	CustomerID string
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	CreatedAt  time.Time
	Lines      []Line
}

// ValidateRequests rejects an empty order and non-positive quantities
// before any product lookup happens.
func ValidateRequests(reqs []LineRequest) error {
	if len(reqs) == 0 {
		return ErrNoLines
	}
	for _, r := range reqs {
		if r.ProductID == "" {
			return ErrMissingField
		}
		if r.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
