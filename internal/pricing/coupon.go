package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CouponFunc computes the discount a coupon grants for the current subtotal
// and shipping cost.
type CouponFunc func(subtotal, shipping decimal.Decimal) decimal.Decimal

// CouponResolver looks up a coupon code. Lookup is case-insensitive.
type CouponResolver interface {
	Resolve(code string) (CouponFunc, bool)
}

// Table is the fixed in-memory coupon table. Keys are stored uppercase.
type Table map[string]CouponFunc

func (t Table) Resolve(code string) (CouponFunc, bool) {
	fn, ok := t[normalizeCode(code)]
	return fn, ok
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

var (
	pointOne = decimal.NewFromFloat(0.1)
	pointTwo = decimal.NewFromFloat(0.2)
)

// DefaultCoupons is the promotion table the shop runs: PRIMEIRA10 takes 10%
// off the subtotal, BEM20 takes 20%, FRETEGRATIS waives whatever shipping
// currently costs.
func DefaultCoupons() Table {
	return Table{
		"PRIMEIRA10": func(subtotal, _ decimal.Decimal) decimal.Decimal {
			return subtotal.Mul(pointOne)
		},
		"BEM20": func(subtotal, _ decimal.Decimal) decimal.Decimal {
			return subtotal.Mul(pointTwo)
		},
		"FRETEGRATIS": func(_, shipping decimal.Decimal) decimal.Decimal {
			return shipping
		},
	}
}
