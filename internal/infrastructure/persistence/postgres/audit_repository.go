package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mohammedyahyaa/ECommerceTask/internal/application/audit"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Record(ctx context.Context, rec *audit.Record) error {
	if rec == nil {
		return fmt.Errorf("audit record is nil")
	}

	const query = `
		INSERT INTO order_audit (order_id, customer_id, subtotal, discount, total, line_count, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (order_id) DO NOTHING;
	`

	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	_, err := r.pool.Exec(ctx, query,
		rec.OrderID,
		rec.CustomerID,
		rec.Subtotal.String(),
		rec.Discount.String(),
		rec.Total.String(),
		rec.LineCount,
		rec.PlacedAt,
	)
	return err
}

func (r *AuditRepository) ensureTable(ctx context.Context) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS order_audit (
			order_id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			subtotal NUMERIC NOT NULL,
			discount NUMERIC NOT NULL,
			total NUMERIC NOT NULL,
			line_count INT NOT NULL,
			placed_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := r.pool.Exec(ctx, stmt)
	return err
}
