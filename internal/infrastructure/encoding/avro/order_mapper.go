package avro

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammedyahyaa/ECommerceTask/internal/application/audit"
	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/order"
)

// OrderPlacedNative maps a placed order to the goavro native form of
// OrderPlacedSchema.
func OrderPlacedNative(o *order.Order) map[string]interface{} {
	lines := make([]interface{}, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, map[string]interface{}{
			"product_id":   line.ProductID,
			"product_name": line.ProductName,
			"quantity":     int64(line.Quantity),
			"unit_price":   line.UnitPrice.String(),
			"discount":     line.Discount.String(),
			"total":        line.Total.String(),
		})
	}

	return map[string]interface{}{
		"order_id":    o.ID,
		"customer_id": o.CustomerID,
		"subtotal":    o.Subtotal.String(),
		"discount":    o.Discount.String(),
		"total":       o.Total.String(),
		"placed_at":   o.CreatedAt.Format(time.RFC3339Nano),
		"lines":       lines,
	}
}

// AuditRecordFromNative converts a decoded OrderPlaced event into the
// audit row the consumer stores.
func AuditRecordFromNative(native interface{}) (*audit.Record, error) {
	record, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("event is not an avro record")
	}

	rec := &audit.Record{}
	var err error
	if rec.OrderID, err = stringField(record, "order_id"); err != nil {
		return nil, err
	}
	if rec.CustomerID, err = stringField(record, "customer_id"); err != nil {
		return nil, err
	}
	if rec.Subtotal, err = decimalField(record, "subtotal"); err != nil {
		return nil, err
	}
	if rec.Discount, err = decimalField(record, "discount"); err != nil {
		return nil, err
	}
	if rec.Total, err = decimalField(record, "total"); err != nil {
		return nil, err
	}

	placedAt, err := stringField(record, "placed_at")
	if err != nil {
		return nil, err
	}
	if rec.PlacedAt, err = time.Parse(time.RFC3339Nano, placedAt); err != nil {
		return nil, fmt.Errorf("parse placed_at: %w", err)
	}

	lines, ok := record["lines"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("field lines is missing or not an array")
	}
	rec.LineCount = len(lines)

	return rec, nil
}

func stringField(record map[string]interface{}, key string) (string, error) {
	v, ok := record[key].(string)
	if !ok {
		return "", fmt.Errorf("field %s is missing or not a string", key)
	}
	return v, nil
}

func decimalField(record map[string]interface{}, key string) (decimal.Decimal, error) {
	raw, err := stringField(record, key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}
