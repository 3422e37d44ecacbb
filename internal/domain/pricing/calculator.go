package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mohammedyahyaa/ECommerceTask/internal/domain/user"
)

var (
	premiumRate        = decimal.NewFromFloat(0.10)
	highOrderRate      = decimal.NewFromFloat(0.05)
	highOrderThreshold = decimal.NewFromInt(500)
)

// Calculator computes the whole-order discount from the subtotal and the
// customer role. Rules stack additively; each rule applies to the raw
// subtotal, not to the running result, and nothing clamps the sum.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// TotalDiscount is pure and deterministic: no I/O, no state.
// - Premium customers get 10% of the subtotal.
// - Any order strictly above 500.00 gets another 5% of the subtotal.
func (c *Calculator) TotalDiscount(subtotal decimal.Decimal, role user.Role) decimal.Decimal {
	total := decimal.Zero
	if role == user.RolePremium {
		total = total.Add(premiumDiscount(subtotal))
	}
	total = total.Add(highOrderDiscount(subtotal))
	return total
}

func premiumDiscount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(premiumRate)
}

func highOrderDiscount(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(highOrderThreshold) {
		return subtotal.Mul(highOrderRate)
	}
	return decimal.Zero
}
