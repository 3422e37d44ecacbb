package repository

import (
	"context"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
)

// Find* methods return (nil, nil) when the record does not exist;
// callers translate that into their own not-found error.

type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, id string) error
}

type ProductRepository interface {
	Save(ctx context.Context, p *product.Product) error
	FindByID(ctx context.Context, id string) (*product.Product, error)
	FindAll(ctx context.Context) ([]*product.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	// Save persists the order and all of its lines as one atomic unit.
	// No reader may observe the order before every line exists.
	Save(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id string) (*order.Order, error)
	// FindByCustomer returns the customer's orders in creation order.
	FindByCustomer(ctx context.Context, customerID string) ([]*order.Order, error)
	FindAll(ctx context.Context) ([]*order.Order, error)
}
