package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Ledger is the only path allowed to mutate a product's available quantity.
// Reserve must be linearizable per product: concurrent reservations against
// the same product behave as if executed in some serial order, so the
// available count never goes negative and never loses a decrement.
type Ledger interface {
	// Reserve atomically decrements the product's available quantity and
	// returns price/name snapshots taken at the instant of the decrement.
	// Fails with product.ErrNotFound or *InsufficientStockError; a failed
	// reservation changes nothing.
	Reserve(ctx context.Context, productID string, quantity int) (Reservation, error)

	// Release returns a previously reserved quantity to the product.
	// Used by the order assembler's compensation path and by
	// administrative stock adjustment, never by request handlers directly.
	Release(ctx context.Context, productID string, quantity int) error

	// SetQuantity overwrites the available count. Administrative only.
	SetQuantity(ctx context.Context, productID string, quantity int) error
}

// Reservation is the successful outcome of a Reserve call.
type Reservation struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// InsufficientStockError reports a reservation that asked for more than
// the product had, with enough context for a user-facing message.
type InsufficientStockError struct {
	ProductID string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}
