package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/inventory"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
)

// Ledger implements inventory.Ledger with a single conditional UPDATE per
// reservation. The database serializes writers on the product row, so the
// decrement either applies in full against a sufficient quantity or not
// at all, with no lock bookkeeping on our side.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) Reserve(ctx context.Context, productID string, quantity int) (inventory.Reservation, error) {
	if quantity <= 0 {
		return inventory.Reservation{}, product.ErrInvalidQuantity
	}

	const query = `
		UPDATE products
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
		RETURNING name, price::text;
	`

	var name, price string
	err := l.pool.QueryRow(ctx, query, productID, quantity).Scan(&name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return inventory.Reservation{}, l.classifyFailure(ctx, productID, quantity)
	}
	if err != nil {
		return inventory.Reservation{}, err
	}

	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return inventory.Reservation{}, fmt.Errorf("parse price: %w", err)
	}

	return inventory.Reservation{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}

func (l *Ledger) Release(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return product.ErrInvalidQuantity
	}

	const query = `
		UPDATE products
		SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1;
	`
	tag, err := l.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (l *Ledger) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return product.ErrInvalidQuantity
	}

	const query = `
		UPDATE products
		SET quantity = $2, updated_at = now()
		WHERE id = $1;
	`
	tag, err := l.pool.Exec(ctx, query, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// classifyFailure distinguishes an unknown product from insufficient
// stock after the conditional update matched no row. The quantity read
// here is diagnostic only; the failed attempt changed nothing either way.
func (l *Ledger) classifyFailure(ctx context.Context, productID string, requested int) error {
	const probe = `SELECT name, quantity FROM products WHERE id = $1;`

	var name string
	var available int
	err := l.pool.QueryRow(ctx, probe, productID).Scan(&name, &available)
	if errors.Is(err, pgx.ErrNoRows) {
		return product.ErrNotFound
	}
	if err != nil {
		return err
	}
	return &inventory.InsufficientStockError{
		ProductID: productID,
		Name:      name,
		Available: available,
		Requested: requested,
	}
}
