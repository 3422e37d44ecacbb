package avro

// OrderPlacedSchema is the Avro schema for order placement events.
// Amounts travel as strings: the decimals are produced by us with exact
// scale, and strings survive any consumer's number handling unchanged.
const OrderPlacedSchema = `{
	"type": "record",
	"name": "OrderPlaced",
	"namespace": "com.ecommercetask.order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "customer_id", "type": "string"},
		{"name": "subtotal", "type": "string"},
		{"name": "discount", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "placed_at", "type": "string"},

		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderLine",
				"fields": [
					{"name": "product_id", "type": "string"},
					{"name": "product_name", "type": "string"},
					{"name": "quantity", "type": "long"},
					{"name": "unit_price", "type": "string"},
					{"name": "discount", "type": "string"},
					{"name": "total", "type": "string"}
				]
			}
		}}
	]
}`
