// Package pricing computes order totals from cart lines. All arithmetic is
// exact decimal; rounding happens only when a value is displayed.
package pricing

import (
	"github.com/shopspring/decimal"

	"tenisland/internal/domain"
)

var (
	defaultThreshold = decimal.NewFromInt(300)
	defaultFlatFee   = decimal.NewFromInt(15)
)

// Engine holds the shipping configuration and the coupon table. It is
// stateless with respect to the cart: every quote is recomputed from the
// lines passed in.
type Engine struct {
	threshold decimal.Decimal
	flatFee   decimal.Decimal
	coupons   CouponResolver
}

func NewEngine() *Engine {
	return &Engine{threshold: defaultThreshold, flatFee: defaultFlatFee, coupons: DefaultCoupons()}
}

// NewEngineWith overrides the free-shipping threshold, flat fee and coupon
// table. A nil resolver disables coupons entirely.
func NewEngineWith(threshold, flatFee decimal.Decimal, coupons CouponResolver) *Engine {
	return &Engine{threshold: threshold, flatFee: flatFee, coupons: coupons}
}

// Subtotal is the exact sum of unit price times quantity over all lines.
func (e *Engine) Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

// ShippingCost is a step function: free at or above the threshold, a flat
// fee below it, and zero when there is nothing to ship.
func (e *Engine) ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.Sign() <= 0 {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(e.threshold) {
		return decimal.Zero
	}
	return e.flatFee
}

// AmountToFreeShipping is how much more the subtotal needs before shipping
// becomes free. Zero once the threshold is reached.
func (e *Engine) AmountToFreeShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(e.threshold) {
		return decimal.Zero
	}
	return e.threshold.Sub(subtotal)
}

// ApplyCoupon resolves code against the coupon table and returns the
// discount it yields for the given subtotal and shipping. The boolean
// reports whether the code was recognized; an unknown code yields a zero
// discount, never an error.
func (e *Engine) ApplyCoupon(code string, subtotal, shipping decimal.Decimal) (decimal.Decimal, bool) {
	if e.coupons == nil {
		return decimal.Zero, false
	}
	fn, ok := e.coupons.Resolve(code)
	if !ok {
		return decimal.Zero, false
	}
	return fn(subtotal, shipping), true
}

// Total is subtotal plus shipping minus discount, floored at zero.
func (e *Engine) Total(subtotal, shipping, discount decimal.Decimal) decimal.Decimal {
	t := subtotal.Add(shipping).Sub(discount)
	if t.Sign() < 0 {
		return decimal.Zero
	}
	return t
}

// Quote is the full price breakdown for a cart and an optional coupon.
type Quote struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	CouponCode string
}

// QuoteFor computes the breakdown from scratch. Passing a new coupon code
// replaces any earlier discount; coupons never stack. The boolean is false
// only when a non-empty code was not recognized (the quote then carries no
// discount).
func (e *Engine) QuoteFor(lines []domain.CartLine, couponCode string) (Quote, bool) {
	subtotal := e.Subtotal(lines)
	shipping := e.ShippingCost(subtotal)

	q := Quote{Subtotal: subtotal, Shipping: shipping}
	valid := true
	if couponCode != "" {
		var discount decimal.Decimal
		discount, valid = e.ApplyCoupon(couponCode, subtotal, shipping)
		if valid {
			q.Discount = discount
			q.CouponCode = normalizeCode(couponCode)
		}
	}
	q.Total = e.Total(q.Subtotal, q.Shipping, q.Discount)
	return q, valid
}
