package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/inventory"
	domain "github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/pricing"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/repository"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// Publisher emits an event for every successfully placed order.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o *domain.Order) error
}

// Service assembles orders: it validates the requested lines against the
// catalog, prices the whole order, reserves stock through the ledger and
// persists the resulting aggregate atomically. It also serves the read
// paths over placed orders.
type Service struct {
	users     repository.UserRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
	ledger    inventory.Ledger
	pricing   *pricing.Calculator
	publisher Publisher
	log       logger.Logger
}

func NewService(
	users repository.UserRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	ledger inventory.Ledger,
	calc *pricing.Calculator,
	publisher Publisher,
	log logger.Logger,
) *Service {
	return &Service{
		users:     users,
		products:  products,
		orders:    orders,
		ledger:    ledger,
		pricing:   calc,
		publisher: publisher,
		log:       log,
	}
}

// PlaceOrder runs the placement transaction. Any failure after the first
// reservation releases everything reserved in this attempt before the
// error surfaces, so readers never observe a partial order.
func (s *Service) PlaceOrder(ctx context.Context, customerID string, reqs []domain.LineRequest) (*domain.Order, error) {
	if err := domain.ValidateRequests(reqs); err != nil {
		return nil, err
	}

	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, user.ErrNotFound
	}

	// Read-only pass: fail fast on unknown products and compute the
	// provisional subtotal the discount policy needs. No stock moves here.
	provisionalSubtotal := decimal.Zero
	for _, req := range reqs {
		p, err := s.products.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("find product: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", product.ErrNotFound, req.ProductID)
		}
		provisionalSubtotal = provisionalSubtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(req.Quantity))))
	}

	totalDiscount := s.pricing.TotalDiscount(provisionalSubtotal, customer.Role)

	// Reservation pass, in request order. The ledger's price snapshot is
	// authoritative from here on; the provisional prices are not reused.
	reservations := make([]inventory.Reservation, 0, len(reqs))
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			s.releaseAll(ctx, reservations)
			return nil, err
		}
		res, err := s.ledger.Reserve(ctx, req.ProductID, req.Quantity)
		if err != nil {
			s.releaseAll(ctx, reservations)
			return nil, err
		}
		reservations = append(reservations, res)
	}

	lines, subtotal := buildLines(reservations, provisionalSubtotal, totalDiscount)

	o := &domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Subtotal:   subtotal,
		Discount:   totalDiscount,
		Total:      subtotal.Sub(totalDiscount),
		CreatedAt:  time.Now().UTC(),
		Lines:      lines,
	}

	if err := ctx.Err(); err != nil {
		s.releaseAll(ctx, reservations)
		return nil, err
	}
	if err := s.orders.Save(ctx, o); err != nil {
		s.releaseAll(ctx, reservations)
		return nil, fmt.Errorf("save order: %w", err)
	}

	// The order is committed; a broken event pipeline must not undo it.
	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, o); err != nil {
			s.log.Warn("publish order placed event failed",
				logger.String("order_id", o.ID),
				logger.Error(err),
			)
		}
	}

	s.log.Info("order placed",
		logger.String("order_id", o.ID),
		logger.String("customer_id", customerID),
		logger.Int("lines", len(o.Lines)),
		logger.String("total", o.Total.String()),
	)
	return o, nil
}

// buildLines turns reservations into order lines and allocates the
// whole-order discount proportionally to each line's share of the
// provisional subtotal, rounded half-up to cents. The last line takes
// the rounding remainder so the per-line discounts sum to totalDiscount
// exactly. Returns the lines and their snapshot-based subtotal.
func buildLines(reservations []inventory.Reservation, provisionalSubtotal, totalDiscount decimal.Decimal) ([]domain.Line, decimal.Decimal) {
	lines := make([]domain.Line, len(reservations))
	subtotal := decimal.Zero
	allocated := decimal.Zero

	for i, res := range reservations {
		itemSubtotal := res.UnitPrice.Mul(decimal.NewFromInt(int64(res.Quantity)))
		subtotal = subtotal.Add(itemSubtotal)

		var lineDiscount decimal.Decimal
		switch {
		case i == len(reservations)-1:
			lineDiscount = totalDiscount.Sub(allocated)
		case totalDiscount.IsPositive() && provisionalSubtotal.IsPositive():
			lineDiscount = totalDiscount.Mul(itemSubtotal).Div(provisionalSubtotal).Round(2)
		default:
			lineDiscount = decimal.Zero
		}
		allocated = allocated.Add(lineDiscount)

		lines[i] = domain.Line{
			ProductID:   res.ProductID,
			ProductName: res.Name,
			Quantity:    res.Quantity,
			UnitPrice:   res.UnitPrice,
			Discount:    lineDiscount,
			Total:       itemSubtotal.Sub(lineDiscount),
		}
	}
	return lines, subtotal
}

// releaseAll is the compensation path: it returns every reservation of a
// failed attempt, newest first. It must run even when the caller's
// context is already cancelled, so it detaches from cancellation.
// Release failures are logged and skipped; one stuck product must not
// keep the others reserved.
func (s *Service) releaseAll(ctx context.Context, reservations []inventory.Reservation) {
	if len(reservations) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for i := len(reservations) - 1; i >= 0; i-- {
		res := reservations[i]
		if err := s.ledger.Release(ctx, res.ProductID, res.Quantity); err != nil {
			s.log.Error("release reservation failed",
				logger.String("product_id", res.ProductID),
				logger.Int("quantity", res.Quantity),
				logger.Error(err),
			)
		}
	}
}

/* ================= read paths ================= */

// GetOrder returns the stored order when the requester owns it or is an
// administrator. Totals come back verbatim as persisted.
func (s *Service) GetOrder(ctx context.Context, id, requesterID string, requesterRole user.Role) (*domain.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.CustomerID != requesterID && !requesterRole.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// ListForCustomer returns the customer's orders in creation order.
func (s *Service) ListForCustomer(ctx context.Context, customerID string) ([]*domain.Order, error) {
	customer, err := s.users.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, user.ErrNotFound
	}
	return s.orders.FindByCustomer(ctx, customerID)
}

// ListAll returns every order as persisted. Administrative read path;
// the HTTP layer gates it on role.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.FindAll(ctx)
}
