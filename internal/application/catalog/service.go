package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/inventory"
	domain "github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/repository"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

// Service manages the product catalog. Stock changes go through the
// inventory ledger; this service never writes a quantity directly once a
// product exists.
type Service struct {
	products repository.ProductRepository
	ledger   inventory.Ledger
	log      logger.Logger
}

func NewService(products repository.ProductRepository, ledger inventory.Ledger, log logger.Logger) *Service {
	return &Service{products: products, ledger: ledger, log: log}
}

type CreateProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int
}

func (s *Service) Create(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	p, err := domain.NewProduct(uuid.NewString(), cmd.Name, cmd.Description, cmd.Price, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	s.log.Info("product created",
		logger.String("product_id", p.ID),
		logger.String("name", p.Name),
	)
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, cmd CreateProductCommand) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if cmd.Name == "" {
		return nil, domain.ErrMissingField
	}
	if cmd.Price.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}

	p.Name = cmd.Name
	p.Description = cmd.Description
	p.Price = cmd.Price
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}

	// The quantity edit is an administrative stock adjustment, so it
	// takes the ledger path like every other quantity mutation.
	if cmd.Quantity != p.Quantity {
		if err := s.ledger.SetQuantity(ctx, id, cmd.Quantity); err != nil {
			return nil, fmt.Errorf("set quantity: %w", err)
		}
		p.Quantity = cmd.Quantity
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return s.products.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.products.FindAll(ctx)
}

// SearchFilter narrows List; nil/zero fields are ignored.
type SearchFilter struct {
	Name      string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	Available *bool
}

func (s *Service) Search(ctx context.Context, filter SearchFilter) ([]*domain.Product, error) {
	all, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Product, 0, len(all))
	for _, p := range all {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if filter.Available != nil {
			if *filter.Available && p.Quantity == 0 {
				continue
			}
			if !*filter.Available && p.Quantity > 0 {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}
