package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// NormalizeProduct maps the product shapes the catalog API serves into a
// ProductSummary. The API mixes English and Portuguese field names
// (name/nome, price/preco, image/imageUrl/imagem) and returns numeric ids,
// so every accepted alias is resolved here and nowhere else.
func NormalizeProduct(raw map[string]any) (ProductSummary, error) {
	id, ok := StringID(raw["id"])
	if !ok {
		return ProductSummary{}, fmt.Errorf("product without id")
	}

	name := firstString(raw, "name", "nome", "title")
	if name == "" {
		return ProductSummary{}, fmt.Errorf("product %s without name", id)
	}

	price, err := toDecimal(firstValue(raw, "price", "preco"))
	if err != nil {
		return ProductSummary{}, fmt.Errorf("product %s: %w", id, err)
	}
	if price.IsNegative() {
		return ProductSummary{}, fmt.Errorf("product %s: negative price", id)
	}

	return ProductSummary{
		ID:       id,
		Name:     name,
		Price:    price,
		ImageRef: firstString(raw, "image", "imageUrl", "image_url", "imagem"),
		Brand:    nestedName(raw["brand"]),
		Category: nestedName(raw["category"]),
	}, nil
}

// StringID renders any id the API serves (number or string) as a string.
func StringID(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, x != ""
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	default:
		return "", false
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case json.Number:
		return decimal.NewFromString(x.String())
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		if x == "" {
			return decimal.Zero, fmt.Errorf("empty price")
		}
		return decimal.NewFromString(x)
	case nil:
		return decimal.Zero, fmt.Errorf("missing price")
	default:
		return decimal.Zero, fmt.Errorf("unsupported price type %T", v)
	}
}

func firstValue(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// nestedName accepts either a plain string or an object with a name field,
// which is how the API embeds brand and category relations.
func nestedName(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case map[string]any:
		return firstString(x, "name", "nome")
	default:
		return ""
	}
}
