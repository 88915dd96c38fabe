package pricing

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"tenisland/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lines(priceQty ...string) []domain.CartLine {
	var out []domain.CartLine
	for i := 0; i+1 < len(priceQty); i += 2 {
		qty, _ := strconv.Atoi(priceQty[i+1])
		out = append(out, domain.CartLine{
			UnitPrice: dec(priceQty[i]),
			Quantity:  qty,
		})
	}
	return out
}

func TestSubtotal(t *testing.T) {
	e := NewEngine()
	if !e.Subtotal(nil).IsZero() {
		t.Fatal("empty cart subtotal must be 0")
	}
	// 3 x 0.1 must be exactly 0.3, no float drift
	got := e.Subtotal(lines("0.1", "3"))
	if got.String() != "0.3" {
		t.Fatalf("want 0.3, got %s", got)
	}
	got = e.Subtotal(lines("129.99", "2", "89.50", "1"))
	if !got.Equal(dec("349.48")) {
		t.Fatalf("want 349.48, got %s", got)
	}
}

func TestShippingCost_Boundaries(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		subtotal, want string
	}{
		{"0", "0"},       // nothing to ship
		{"0.01", "15"},   // below threshold
		{"299.99", "15"}, // just below
		{"300", "0"},     // exactly at threshold
		{"301", "0"},
	}
	for _, c := range cases {
		got := e.ShippingCost(dec(c.subtotal))
		if !got.Equal(dec(c.want)) {
			t.Errorf("shipping(%s) = %s, want %s", c.subtotal, got, c.want)
		}
	}
}

func TestAmountToFreeShipping(t *testing.T) {
	e := NewEngine()
	if got := e.AmountToFreeShipping(dec("250")); !got.Equal(dec("50")) {
		t.Fatalf("want 50, got %s", got)
	}
	if got := e.AmountToFreeShipping(dec("300")); !got.IsZero() {
		t.Fatalf("want 0 at threshold, got %s", got)
	}
}

func TestApplyCoupon(t *testing.T) {
	e := NewEngine()

	d, ok := e.ApplyCoupon("PRIMEIRA10", dec("100"), dec("15"))
	if !ok || !d.Equal(dec("10")) {
		t.Fatalf("PRIMEIRA10 on 100: ok=%v d=%s", ok, d)
	}

	// case-insensitive lookup
	d, ok = e.ApplyCoupon("primeira10", dec("100"), dec("15"))
	if !ok || !d.Equal(dec("10")) {
		t.Fatalf("lowercase code: ok=%v d=%s", ok, d)
	}

	d, ok = e.ApplyCoupon("BEM20", dec("100"), dec("15"))
	if !ok || !d.Equal(dec("20")) {
		t.Fatalf("BEM20 on 100: ok=%v d=%s", ok, d)
	}

	d, ok = e.ApplyCoupon("FRETEGRATIS", dec("100"), dec("15"))
	if !ok || !d.Equal(dec("15")) {
		t.Fatalf("FRETEGRATIS: ok=%v d=%s", ok, d)
	}

	// shipping already free: coupon is valid but worth nothing
	d, ok = e.ApplyCoupon("FRETEGRATIS", dec("300"), dec("0"))
	if !ok || !d.IsZero() {
		t.Fatalf("FRETEGRATIS with free shipping: ok=%v d=%s", ok, d)
	}

	d, ok = e.ApplyCoupon("NAOEXISTE", dec("100"), dec("15"))
	if ok || !d.IsZero() {
		t.Fatalf("unknown code must signal invalid with zero discount: ok=%v d=%s", ok, d)
	}
}

func TestTotal_NeverNegative(t *testing.T) {
	e := NewEngine()
	if got := e.Total(dec("10"), dec("15"), dec("100")); !got.IsZero() {
		t.Fatalf("total must clamp at 0, got %s", got)
	}
	if got := e.Total(dec("100"), dec("15"), dec("10")); !got.Equal(dec("105")) {
		t.Fatalf("want 105, got %s", got)
	}
}

func TestQuoteFor(t *testing.T) {
	e := NewEngine()

	// empty cart: everything zero
	q, valid := e.QuoteFor(nil, "")
	if !valid || !q.Subtotal.IsZero() || !q.Shipping.IsZero() || !q.Total.IsZero() {
		t.Fatalf("empty cart quote: %+v", q)
	}

	ls := lines("100", "1")
	q, valid = e.QuoteFor(ls, "")
	if !valid || !q.Total.Equal(dec("115")) {
		t.Fatalf("100 + 15 shipping: %+v", q)
	}

	// applying a second coupon replaces the first, it never stacks
	q, valid = e.QuoteFor(ls, "PRIMEIRA10")
	if !valid || !q.Discount.Equal(dec("10")) || !q.Total.Equal(dec("105")) {
		t.Fatalf("PRIMEIRA10 quote: %+v", q)
	}
	q, valid = e.QuoteFor(ls, "BEM20")
	if !valid || !q.Discount.Equal(dec("20")) || !q.Total.Equal(dec("95")) {
		t.Fatalf("BEM20 quote: %+v", q)
	}
	q, valid = e.QuoteFor(ls, "FRETEGRATIS")
	if !valid || !q.Discount.Equal(dec("15")) || !q.Total.Equal(dec("100")) {
		t.Fatalf("FRETEGRATIS must replace, not stack: %+v", q)
	}

	// unknown code: invalid signal, quote keeps zero discount
	q, valid = e.QuoteFor(ls, "XYZ")
	if valid || !q.Discount.IsZero() || !q.Total.Equal(dec("115")) {
		t.Fatalf("unknown coupon quote: valid=%v %+v", valid, q)
	}
}
