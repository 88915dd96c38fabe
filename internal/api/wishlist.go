package api

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"tenisland/internal/domain"
)

// Wishlist fetches the signed-in buyer's saved products. Rows arrive as
// wishlist records embedding the product (with brand and category), which
// are normalized into FavoriteEntry values here.
func (c *Client) Wishlist(ctx context.Context) ([]domain.FavoriteEntry, error) {
	var raw []map[string]any
	if err := c.do(ctx, "GET", "/wishlist", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.FavoriteEntry, 0, len(raw))
	for _, row := range raw {
		prod, ok := row["product"].(map[string]any)
		if !ok {
			// some deployments return the product fields inline
			prod = row
		}
		p, err := domain.NormalizeProduct(prod)
		if err != nil {
			c.log.Warn("api: skipping malformed wishlist row", zap.Error(err))
			continue
		}
		out = append(out, domain.FavoriteFromProduct(p))
	}
	return out, nil
}

// AddToWishlist saves a product. The endpoint requires a bearer token.
func (c *Client) AddToWishlist(ctx context.Context, productID string) error {
	body := map[string]any{"product_id": idJSON(productID)}
	return c.do(ctx, "POST", "/wishlist", body, nil)
}

// RemoveFromWishlist deletes a saved product; the server treats deleting an
// absent row as success, so the call is retry-safe.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) error {
	return c.do(ctx, "DELETE", "/wishlist/"+url.PathEscape(productID), nil, nil)
}
