package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/inventory"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
)

func seedProduct(t *testing.T, store *Store, id string, price string, quantity int) {
	t.Helper()

	p, err := product.NewProduct(id, "product "+id, "", decimal.RequireFromString(price), quantity)
	require.NoError(t, err)
	require.NoError(t, NewProductRepository(store).Save(context.Background(), p))
}

func TestLedger_Reserve(t *testing.T) {
	store := NewStore()
	ledger := NewLedger(store)
	seedProduct(t, store, "p1", "100.00", 5)

	res, err := ledger.Reserve(context.Background(), "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, "p1", res.ProductID)
	assert.Equal(t, 3, res.Quantity)
	assert.True(t, decimal.RequireFromString("100.00").Equal(res.UnitPrice))

	p, err := NewProductRepository(store).FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)
}

func TestLedger_Reserve_InsufficientStock(t *testing.T) {
	store := NewStore()
	ledger := NewLedger(store)
	seedProduct(t, store, "p1", "100.00", 2)

	_, err := ledger.Reserve(context.Background(), "p1", 3)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	// Nothing was applied.
	p, err := NewProductRepository(store).FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)
}

func TestLedger_Reserve_UnknownProduct(t *testing.T) {
	store := NewStore()
	ledger := NewLedger(store)

	_, err := ledger.Reserve(context.Background(), "missing", 1)

	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestLedger_Reserve_CancelledContext(t *testing.T) {
	store := NewStore()
	ledger := NewLedger(store)
	seedProduct(t, store, "p1", "10.00", 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ledger.Reserve(ctx, "p1", 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestLedger_Release(t *testing.T) {
	store := NewStore()
	ledger := NewLedger(store)
	seedProduct(t, store, "p1", "10.00", 5)

	_, err := ledger.Reserve(context.Background(), "p1", 4)
	require.NoError(t, err)
	require.NoError(t, ledger.Release(context.Background(), "p1", 4))

	p, err := NewProductRepository(store).FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
}

// Two orders race for 5 units, each wanting 3. Exactly one may win and the
// quantity must never go negative.
func TestLedger_Reserve_ConcurrentRace(t *testing.T) {
	store := NewStore()
	ledger := NewLedger(store)
	seedProduct(t, store, "p1", "100.00", 5)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ledger.Reserve(context.Background(), "p1", 3)
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var stockErr *inventory.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	p, err := NewProductRepository(store).FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Quantity)
}

// A storm of concurrent single-unit reservations must account for every
// unit exactly once: successes plus remaining stock equals the initial count.
func TestLedger_Reserve_ConcurrentStorm(t *testing.T) {
	const initial = 40
	const workers = 100

	store := NewStore()
	ledger := NewLedger(store)
	seedProduct(t, store, "p1", "1.00", initial)

	var wg sync.WaitGroup
	var succeeded int64
	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Reserve(context.Background(), "p1", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	p, err := NewProductRepository(store).FindByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Quantity, 0)
	assert.Equal(t, int64(initial), succeeded+int64(p.Quantity))
	assert.Equal(t, int64(initial), succeeded)
}
