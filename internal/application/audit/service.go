package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// Record is one row of the placement audit trail, derived from an
// OrderPlaced event rather than from the orders table itself.
type Record struct {
	OrderID    string
	CustomerID string
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	LineCount  int
	PlacedAt   time.Time
}

type Repository interface {
	Record(ctx context.Context, rec *Record) error
}

// Service stores audit rows for consumed order events.
type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) HandleOrderPlaced(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("audit record is nil")
	}
	if err := s.repo.Record(ctx, rec); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}
	s.log.Info("order audited",
		logger.String("order_id", rec.OrderID),
		logger.String("customer_id", rec.CustomerID),
		logger.String("total", rec.Total.String()),
	)
	return nil
}
