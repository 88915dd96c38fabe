// Package checkout turns the cart into an order submission. Preconditions
// (non-empty cart, complete buyer info) are enforced here, before any
// network call; submission failures leave the cart untouched so the buyer
// can retry.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tenisland/internal/api"
	"tenisland/internal/domain"
	"tenisland/internal/pricing"
	"tenisland/internal/validate"
)

// ErrEmptyCart blocks checkout before anything reaches the network.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ErrInvalidPaymentMethod rejects unknown payment method tags.
var ErrInvalidPaymentMethod = errors.New("checkout: invalid payment method")

// ValidationError lists the buyer fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "checkout: invalid buyer info: " + strings.Join(e.Fields, ", ")
}

// defaultSize is sent for lines added without a size selection.
const defaultSize = "M"

type cartStore interface {
	Lines() []domain.CartLine
	Clear()
}

type ordersAPI interface {
	CreateOrder(ctx context.Context, req api.OrderRequest) (string, error)
}

type Assembler struct {
	cart    cartStore
	orders  ordersAPI
	pricing *pricing.Engine
	v       *validator.Validate
	log     *zap.Logger
}

func NewAssembler(cart cartStore, orders ordersAPI, engine *pricing.Engine, log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	v := validator.New()
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return validate.PostalCode(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return validate.Phone(fl.Field().String())
	})
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return validate.State(fl.Field().String())
	})
	return &Assembler{cart: cart, orders: orders, pricing: engine, v: v, log: log}
}

// BuildPayload assembles the order body from the current cart, the buyer's
// form data and the active coupon. userID is nil for anonymous checkout.
// Precondition violations return before any network activity.
func (a *Assembler) BuildPayload(buyer domain.BuyerInfo, method domain.PaymentMethod, userID *string, couponCode string) (api.OrderRequest, error) {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		return api.OrderRequest{}, ErrEmptyCart
	}
	if !method.Valid() {
		return api.OrderRequest{}, ErrInvalidPaymentMethod
	}
	if err := a.validateBuyer(buyer); err != nil {
		return api.OrderRequest{}, err
	}

	quote, _ := a.pricing.QuoteFor(lines, couponCode)

	items := make([]api.OrderItem, 0, len(lines))
	for _, l := range lines {
		size := l.Size
		if size == "" {
			size = defaultSize
		}
		items = append(items, api.NewOrderItem(l.ProductID, l.Quantity, l.UnitPrice, size))
	}

	return api.OrderRequest{
		UserID:        userID,
		CustomerName:  buyer.Name,
		CustomerEmail: buyer.Email,
		CustomerPhone: buyer.Phone,
		ShippingAddress: fmt.Sprintf("%s, %s - %s, %s",
			buyer.Address, buyer.City, buyer.State, buyer.PostalCode),
		PaymentMethod: string(method),
		TotalAmount:   quote.Total,
		Items:         items,
	}, nil
}

// Submit sends the payload to the orders API. On success the cart is
// cleared and the new order id returned. On any failure the cart is left
// as it was; there is no automatic retry.
func (a *Assembler) Submit(ctx context.Context, req api.OrderRequest) (string, error) {
	orderID, err := a.orders.CreateOrder(ctx, req)
	if err != nil {
		a.log.Info("checkout: submission failed", zap.Error(err))
		return "", err
	}
	a.cart.Clear()
	a.log.Info("checkout: order placed", zap.String("order_id", orderID))
	return orderID, nil
}

func (a *Assembler) validateBuyer(buyer domain.BuyerInfo) error {
	err := a.v.Struct(buyer)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}
