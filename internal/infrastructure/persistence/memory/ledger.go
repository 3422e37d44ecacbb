package memory

import (
	"context"
	"sync"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/inventory"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
)

// Ledger implements inventory.Ledger over a Store with one mutex per
// product id. The key mutex serializes the whole check-and-decrement for
// a product, so reservations against the same product are linearizable;
// reservations against different products do not contend on it.
type Ledger struct {
	store *Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLedger(s *Store) *Ledger {
	return &Ledger{
		store: s,
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *Ledger) Reserve(ctx context.Context, productID string, quantity int) (inventory.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return inventory.Reservation{}, err
	}
	if quantity <= 0 {
		return inventory.Reservation{}, product.ErrInvalidQuantity
	}

	key := l.lockFor(productID)
	key.Lock()
	defer key.Unlock()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return inventory.Reservation{}, product.ErrNotFound
	}
	if p.Quantity < quantity {
		return inventory.Reservation{}, &inventory.InsufficientStockError{
			ProductID: productID,
			Name:      p.Name,
			Available: p.Quantity,
			Requested: quantity,
		}
	}

	p.Quantity -= quantity
	return inventory.Reservation{
		ProductID: productID,
		Name:      p.Name,
		Quantity:  quantity,
		UnitPrice: p.Price,
	}, nil
}

func (l *Ledger) Release(_ context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return product.ErrInvalidQuantity
	}

	key := l.lockFor(productID)
	key.Lock()
	defer key.Unlock()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return product.ErrNotFound
	}
	p.Quantity += quantity
	return nil
}

func (l *Ledger) SetQuantity(_ context.Context, productID string, quantity int) error {
	if quantity < 0 {
		return product.ErrInvalidQuantity
	}

	key := l.lockFor(productID)
	key.Lock()
	defer key.Unlock()

	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	p, ok := l.store.products[productID]
	if !ok {
		return product.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (l *Ledger) lockFor(productID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[productID] = m
	}
	return m
}
