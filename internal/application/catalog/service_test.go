package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohammedyahyaa/ECommerceTask/internal/domain/product"
	"github.com/mohammedyahyaa/ECommerceTask/internal/infrastructure/persistence/memory"
	"github.com/mohammedyahyaa/ECommerceTask/pkg/logger"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	svc := NewService(memory.NewProductRepository(store), memory.NewLedger(store), logger.NewNop())
	return svc, store
}

func create(t *testing.T, svc *Service, name, price string, quantity int) *domain.Product {
	t.Helper()

	p, err := svc.Create(context.Background(), CreateProductCommand{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	})
	require.NoError(t, err)
	return p
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService(t)

	created := create(t, svc, "keyboard", "49.90", 10)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keyboard", got.Name)
	assert.Equal(t, 10, got.Quantity)
}

func TestCreate_NegativePrice(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), CreateProductCommand{
		Name:  "broken",
		Price: decimal.RequireFromString("-1"),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestUpdate_AdjustsStockThroughLedger(t *testing.T) {
	svc, _ := newService(t)
	created := create(t, svc, "keyboard", "49.90", 10)

	updated, err := svc.Update(context.Background(), created.ID, CreateProductCommand{
		Name:     "keyboard v2",
		Price:    decimal.RequireFromString("59.90"),
		Quantity: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, "keyboard v2", updated.Name)
	assert.Equal(t, 4, updated.Quantity)

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Quantity)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Update(context.Background(), "missing", CreateProductCommand{Name: "x"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t)
	created := create(t, svc, "keyboard", "49.90", 10)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err := svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	svc, _ := newService(t)
	create(t, svc, "Mechanical Keyboard", "120.00", 3)
	create(t, svc, "Mouse", "25.00", 0)
	create(t, svc, "Keyboard Cover", "15.00", 7)

	byName, err := svc.Search(context.Background(), SearchFilter{Name: "keyboard"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	min := decimal.RequireFromString("20.00")
	max := decimal.RequireFromString("130.00")
	byPrice, err := svc.Search(context.Background(), SearchFilter{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, byPrice, 2)

	available := true
	inStock, err := svc.Search(context.Background(), SearchFilter{Available: &available})
	require.NoError(t, err)
	assert.Len(t, inStock, 2)

	unavailable := false
	outOfStock, err := svc.Search(context.Background(), SearchFilter{Available: &unavailable})
	require.NoError(t, err)
	require.Len(t, outOfStock, 1)
	assert.Equal(t, "Mouse", outOfStock[0].Name)
}
