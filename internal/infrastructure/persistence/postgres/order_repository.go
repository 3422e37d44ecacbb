package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Save writes the order and its lines inside one transaction. Readers see
// either the whole order or nothing.
func (r *OrderRepository) Save(ctx context.Context, o *domain.Order) error {
	if o == nil {
		return fmt.Errorf("order is nil")
	}

	if err := r.ensureTables(ctx); err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const orderQuery = `
		INSERT INTO orders (id, customer_id, subtotal, discount, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.CustomerID,
		o.Subtotal.String(),
		o.Discount.String(),
		o.Total.String(),
		o.CreatedAt,
	)
	if err != nil {
		return err
	}

	const lineQuery = `
		INSERT INTO order_lines (order_id, position, product_id, product_name, quantity, unit_price, discount, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	for i, line := range o.Lines {
		_, err = tx.Exec(ctx, lineQuery,
			o.ID,
			i,
			line.ProductID,
			line.ProductName,
			line.Quantity,
			line.UnitPrice.String(),
			line.Discount.String(),
			line.Total.String(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `
		SELECT id, customer_id, subtotal::text, discount::text, total::text, created_at
		FROM orders
		WHERE id = $1;
	`
	var o domain.Order
	var subtotal, discount, total string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.CustomerID,
		&subtotal,
		&discount,
		&total,
		&o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := parseOrderAmounts(&o, subtotal, discount, total); err != nil {
		return nil, err
	}

	if o.Lines, err = r.findLines(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	const query = `
		SELECT id, customer_id, subtotal::text, discount::text, total::text, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at;
	`
	return r.findMany(ctx, query, customerID)
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	const query = `
		SELECT id, customer_id, subtotal::text, discount::text, total::text, created_at
		FROM orders
		ORDER BY created_at;
	`
	return r.findMany(ctx, query)
}

func (r *OrderRepository) findMany(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		var o domain.Order
		var subtotal, discount, total string
		if err := rows.Scan(&o.ID, &o.CustomerID, &subtotal, &discount, &total, &o.CreatedAt); err != nil {
			return nil, err
		}
		if err := parseOrderAmounts(&o, subtotal, discount, total); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range out {
		if o.Lines, err = r.findLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepository) findLines(ctx context.Context, orderID string) ([]domain.Line, error) {
	const query = `
		SELECT product_id, product_name, quantity, unit_price::text, discount::text, total::text
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position;
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.Line
	for rows.Next() {
		var line domain.Line
		var unitPrice, discount, total string
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &unitPrice, &discount, &total); err != nil {
			return nil, err
		}
		if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		if line.Discount, err = decimal.NewFromString(discount); err != nil {
			return nil, fmt.Errorf("parse discount: %w", err)
		}
		if line.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func parseOrderAmounts(o *domain.Order, subtotal, discount, total string) error {
	var err error
	if o.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return fmt.Errorf("parse subtotal: %w", err)
	}
	if o.Discount, err = decimal.NewFromString(discount); err != nil {
		return fmt.Errorf("parse discount: %w", err)
	}
	if o.Total, err = decimal.NewFromString(total); err != nil {
		return fmt.Errorf("parse total: %w", err)
	}
	return nil
}

func (r *OrderRepository) ensureTables(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			subtotal NUMERIC NOT NULL,
			discount NUMERIC NOT NULL,
			total NUMERIC NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_lines (
			order_id TEXT NOT NULL REFERENCES orders(id),
			position INT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INT NOT NULL,
			unit_price NUMERIC NOT NULL,
			discount NUMERIC NOT NULL,
			total NUMERIC NOT NULL,
			PRIMARY KEY (order_id, position)
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}
