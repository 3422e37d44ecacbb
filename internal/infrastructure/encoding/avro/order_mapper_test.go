package avro

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
)

func TestOrderPlaced_EncodeDecodeRoundtrip(t *testing.T) {
	encoder, err := NewEncoder(OrderPlacedSchema)
	require.NoError(t, err)

	placedAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	o := &order.Order{
		ID:         "o1",
		CustomerID: "c1",
		Subtotal:   decimal.RequireFromString("600.00"),
		Discount:   decimal.RequireFromString("30.00"),
		Total:      decimal.RequireFromString("570.00"),
		CreatedAt:  placedAt,
		Lines: []order.Line{
			{
				ProductID:   "p1",
				ProductName: "keyboard",
				Quantity:    3,
				UnitPrice:   decimal.RequireFromString("100.00"),
				Discount:    decimal.RequireFromString("15.00"),
				Total:       decimal.RequireFromString("285.00"),
			},
			{
				ProductID:   "p2",
				ProductName: "monitor",
				Quantity:    1,
				UnitPrice:   decimal.RequireFromString("300.00"),
				Discount:    decimal.RequireFromString("15.00"),
				Total:       decimal.RequireFromString("285.00"),
			},
		},
	}

	binary, err := encoder.EncodeNative(OrderPlacedNative(o))
	require.NoError(t, err)

	native, err := encoder.DecodeBinary(binary)
	require.NoError(t, err)

	rec, err := AuditRecordFromNative(native)
	require.NoError(t, err)
	assert.Equal(t, "o1", rec.OrderID)
	assert.Equal(t, "c1", rec.CustomerID)
	assert.True(t, decimal.RequireFromString("570.00").Equal(rec.Total))
	assert.Equal(t, 2, rec.LineCount)
	assert.True(t, placedAt.Equal(rec.PlacedAt))
}

func TestAuditRecordFromNative_BadShape(t *testing.T) {
	_, err := AuditRecordFromNative("not a record")

	assert.Error(t, err)
}
