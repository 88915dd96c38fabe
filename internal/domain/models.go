package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a referenced product or resource does not exist.
var ErrNotFound = errors.New("not found")

// ProductSummary is the canonical product shape used everywhere past the API
// boundary. All external product payloads are mapped into it by
// NormalizeProduct before they reach the cart or favorites stores.
type ProductSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageRef string          `json:"image,omitempty"`
	Brand    string          `json:"brand,omitempty"`
	Category string          `json:"category,omitempty"`
}

// CartLine is one distinct product variant (product+size+color) in the cart.
type CartLine struct {
	LineID    string          `json:"lineId"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

// VariantKey identifies the (product, size, color) triple a line merges on.
// Fields are length-prefixed so a separator inside one field cannot collide
// with a neighboring field.
func (l CartLine) VariantKey() string {
	return fmt.Sprintf("%d:%s|%d:%s|%d:%s",
		len(l.ProductID), l.ProductID, len(l.Size), l.Size, len(l.Color), l.Color)
}

// LineTotal is unit price times quantity, exact.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// FavoriteEntry is a saved product reference, independent of cart membership.
type FavoriteEntry struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image,omitempty"`
	Brand     string          `json:"brand,omitempty"`
	Category  string          `json:"category,omitempty"`
}

// FavoriteFromProduct builds a wishlist entry from a normalized product.
func FavoriteFromProduct(p ProductSummary) FavoriteEntry {
	return FavoriteEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageRef:  p.ImageRef,
		Brand:     p.Brand,
		Category:  p.Category,
	}
}

// Brand and Category mirror the read-only catalog listings.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PaymentMethod is the checkout payment selector. The values match the order
// API's accepted tags.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPix, PaymentBoleto:
		return true
	}
	return false
}

// BuyerInfo carries the contact and address fields entered at checkout.
// All fields are required before a payload may be built.
type BuyerInfo struct {
	Name       string `validate:"required,min=2,max=100"`
	Email      string `validate:"required,email"`
	Phone      string `validate:"required,phone"`
	Address    string `validate:"required"`
	City       string `validate:"required"`
	State      string `validate:"required,uf"`
	PostalCode string `validate:"required,cep"`
}
