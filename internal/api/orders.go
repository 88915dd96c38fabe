package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of the order-creation body.
type OrderItem struct {
	ProductID any             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Size      string          `json:"size"`
}

// NewOrderItem keeps numeric product ids numeric on the wire.
func NewOrderItem(productID string, quantity int, price decimal.Decimal, size string) OrderItem {
	return OrderItem{ProductID: idJSON(productID), Quantity: quantity, Price: price, Size: size}
}

// OrderRequest is the POST /orders body. UserID stays null for anonymous
// checkout.
type OrderRequest struct {
	UserID          *string         `json:"userId"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Items           []OrderItem     `json:"items"`
}

// CreateOrder submits the order and returns the new order id. Failures
// carry the server's error message when it sent one.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	var resp struct {
		Order struct {
			ID json.Number `json:"id"`
		} `json:"order"`
	}
	if err := c.do(ctx, "POST", "/orders", req, &resp); err != nil {
		return "", err
	}
	if resp.Order.ID.String() == "" {
		return "", fmt.Errorf("api: order response missing id")
	}
	return resp.Order.ID.String(), nil
}
