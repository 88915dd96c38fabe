package api

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"tenisland/internal/domain"
)

// Products lists the catalog. Every raw payload is normalized at this
// boundary; entries that fail normalization are logged and skipped rather
// than failing the whole listing.
func (c *Client) Products(ctx context.Context) ([]domain.ProductSummary, error) {
	var raw []map[string]any
	if err := c.do(ctx, "GET", "/products", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.ProductSummary, 0, len(raw))
	for _, r := range raw {
		p, err := domain.NormalizeProduct(r)
		if err != nil {
			c.log.Warn("api: skipping malformed product", zap.Error(err))
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Product fetches one product by id. A 404 maps to domain.ErrNotFound.
func (c *Client) Product(ctx context.Context, id string) (domain.ProductSummary, error) {
	var raw map[string]any
	if err := c.do(ctx, "GET", "/products/"+url.PathEscape(id), nil, &raw); err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.Status == 404 {
			return domain.ProductSummary{}, domain.ErrNotFound
		}
		return domain.ProductSummary{}, err
	}
	return domain.NormalizeProduct(raw)
}

func (c *Client) Brands(ctx context.Context) ([]domain.Brand, error) {
	var raw []map[string]any
	if err := c.do(ctx, "GET", "/brands", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Brand, 0, len(raw))
	for _, r := range raw {
		if b, ok := namedRecord(r); ok {
			out = append(out, domain.Brand(b))
		}
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var raw []map[string]any
	if err := c.do(ctx, "GET", "/categories", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(raw))
	for _, r := range raw {
		if b, ok := namedRecord(r); ok {
			out = append(out, domain.Category(b))
		}
	}
	return out, nil
}

type named struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func namedRecord(raw map[string]any) (named, bool) {
	id, ok := domain.StringID(raw["id"])
	if !ok {
		return named{}, false
	}
	name, _ := raw["name"].(string)
	if name == "" {
		if nome, ok := raw["nome"].(string); ok {
			name = nome
		}
	}
	if name == "" {
		return named{}, false
	}
	return named{ID: id, Name: name}, true
}
