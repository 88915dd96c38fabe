// Package api is the typed client for the storefront REST API: catalog
// (read-only), orders, and wishlist. The server is a black box; only the
// wire contracts here are relied on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token means the request goes out anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed token (or "" for anonymous use).
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    *zap.Logger
}

// New builds a client for the API rooted at baseURL (e.g.
// "http://localhost:3001/api"). hc, tokens and log may be nil.
func New(baseURL string, hc *http.Client, tokens TokenSource, log *zap.Logger) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc, tokens: tokens, log: log}
}

// APIError carries a non-2xx response. Message holds the server's own
// error text when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Error string `json:"error"`
		}
		if derr := json.NewDecoder(resp.Body).Decode(&e); derr == nil {
			apiErr.Message = e.Error
		}
		c.log.Debug("api: request failed",
			zap.String("method", method), zap.String("path", path),
			zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(out)
}

// idJSON renders a product id the way the API expects it in a body: numeric
// ids go out as numbers, anything else as the raw string. A string that does
// not round-trip through the integer form ("007", "+5") stays a string so
// the wire value is unchanged.
func idJSON(id string) any {
	if n, err := strconv.Atoi(id); err == nil && strconv.Itoa(n) == id {
		return n
	}
	return id
}
