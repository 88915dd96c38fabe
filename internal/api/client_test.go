package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProducts_NormalizesMixedShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Air Max", "price": 499.9, "brand": {"name": "Nike"}},
			{"id": 2, "nome": "Gel Kayano", "preco": "899.00", "imagem": "gk.jpg"},
			{"name": "broken, no id", "price": 1}
		]`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil, nil)
	ps, err := c.Products(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 2 {
		t.Fatalf("malformed entries must be skipped, got %d products", len(ps))
	}
	if ps[0].Brand != "Nike" || ps[1].Name != "Gel Kayano" {
		t.Fatalf("normalization wrong: %+v", ps)
	}
}

func TestCreateOrder_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/orders" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok123" {
			t.Errorf("missing bearer header, got %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success": true, "order": {"id": 42}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, StaticToken("tok123"), nil)
	id, err := c.CreateOrder(context.Background(), OrderRequest{
		CustomerName:  "Maria",
		PaymentMethod: "pix",
		TotalAmount:   decimal.RequireFromString("115"),
		Items:         []OrderItem{NewOrderItem("7", 1, decimal.NewFromInt(100), "42")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "42" {
		t.Fatalf("want order id 42, got %q", id)
	}

	// numeric product ids stay numbers on the wire
	items := got["items"].([]any)
	if _, ok := items[0].(map[string]any)["productId"].(float64); !ok {
		t.Fatalf("productId should be numeric, got %T", items[0].(map[string]any)["productId"])
	}
	if got["userId"] != nil {
		t.Fatalf("anonymous checkout must send null userId, got %v", got["userId"])
	}
}

func TestCreateOrder_ServerErrorMessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Um ou mais produtos não existem"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil, nil)
	_, err := c.CreateOrder(context.Background(), OrderRequest{})
	if err == nil {
		t.Fatal("want error")
	}
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Error() != "Um ou mais produtos não existem" {
		t.Fatalf("server message not surfaced verbatim: %v", err)
	}
}

func TestCreateOrder_GenericMessageWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, nil, nil)
	_, err := c.CreateOrder(context.Background(), OrderRequest{})
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != 502 || apiErr.Message != "" {
		t.Fatalf("want generic APIError, got %v", err)
	}
	if apiErr.Error() == "" {
		t.Fatal("generic message must not be empty")
	}
}

func TestIDJSON(t *testing.T) {
	cases := []struct {
		id   string
		want any
	}{
		{"42", 42},
		{"0", 0},
		{"007", "007"}, // zero-padded, must not collapse to 7
		{"+5", "+5"},
		{"abc-123", "abc-123"},
	}
	for _, c := range cases {
		if got := idJSON(c.id); got != c.want {
			t.Errorf("idJSON(%q) = %v (%T), want %v", c.id, got, got, c.want)
		}
	}
}

func TestWishlistEndpoints(t *testing.T) {
	var sawDelete, sawPost bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "token required"}`))
			return
		}
		switch {
		case r.Method == "GET" && r.URL.Path == "/wishlist":
			_, _ = w.Write([]byte(`[
				{"product_id": 3, "product": {"id": 3, "name": "Air Force 1", "price": 799.9,
					"brand": {"name": "Nike"}, "category": {"name": "Casual"}}}
			]`))
		case r.Method == "POST" && r.URL.Path == "/wishlist":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			if _, ok := body["product_id"].(float64); !ok {
				t.Errorf("product_id should be numeric, got %T", body["product_id"])
			}
			sawPost = true
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == "DELETE" && r.URL.Path == "/wishlist/3":
			sawDelete = true
			_, _ = w.Write([]byte(`{"message": "removed"}`))
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, nil, StaticToken("tok"), nil)
	ctx := context.Background()

	entries, err := c.Wishlist(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ProductID != "3" || entries[0].Brand != "Nike" {
		t.Fatalf("wishlist rows not normalized: %+v", entries)
	}

	if err := c.AddToWishlist(ctx, "5"); err != nil || !sawPost {
		t.Fatalf("add failed: %v", err)
	}
	if err := c.RemoveFromWishlist(ctx, "3"); err != nil || !sawDelete {
		t.Fatalf("remove failed: %v", err)
	}

	// anonymous client is rejected by the server and the message surfaces
	anon := New(srv.URL, nil, nil, nil)
	if _, err := anon.Wishlist(ctx); err == nil {
		t.Fatal("anonymous wishlist access must fail")
	}
}
