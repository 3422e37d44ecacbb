package memory

import (
	"context"
	"sync"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
)

// Store holds all in-memory tables. Repositories and the ledger share one
// Store so that stock reserved through the ledger is the same stock the
// product repository reports. Reads hand out copies; the only mutation
// path for quantities is the ledger.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*user.User
	products map[string]*product.Product
	orders   map[string]*order.Order
	orderSeq []string
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*user.User),
		products: make(map[string]*product.Product),
		orders:   make(map[string]*order.Order),
	}
}

/* ================= users ================= */

type UserRepository struct {
	store *Store
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) Save(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *u
	r.store.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindAll(_ context.Context) ([]*user.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.users, id)
	return nil
}

/* ================= products ================= */

type ProductRepository struct {
	store *Store
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{store: s}
}

func (r *ProductRepository) Save(_ context.Context, p *product.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *p
	r.store.products[p.ID] = &cp
	return nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) FindAll(_ context.Context) ([]*product.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*product.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.products, id)
	return nil
}

/* ================= orders ================= */

type OrderRepository struct {
	store *Store
}

func NewOrderRepository(s *Store) *OrderRepository {
	return &OrderRepository{store: s}
}

func (r *OrderRepository) Save(_ context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[o.ID]; !exists {
		r.store.orderSeq = append(r.store.orderSeq, o.ID)
	}
	r.store.orders[o.ID] = copyOrder(o)
	return nil
}

func (r *OrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (r *OrderRepository) FindByCustomer(_ context.Context, customerID string) ([]*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*order.Order
	for _, id := range r.store.orderSeq {
		if o := r.store.orders[id]; o != nil && o.CustomerID == customerID {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *OrderRepository) FindAll(_ context.Context) ([]*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*order.Order, 0, len(r.store.orderSeq))
	for _, id := range r.store.orderSeq {
		if o := r.store.orders[id]; o != nil {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func copyOrder(o *order.Order) *order.Order {
	cp := *o
	cp.Lines = make([]order.Line, len(o.Lines))
	copy(cp.Lines, o.Lines)
	return &cp
}
