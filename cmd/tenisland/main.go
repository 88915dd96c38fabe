package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tenisland/internal/api"
	"tenisland/internal/cart"
	"tenisland/internal/checkout"
	"tenisland/internal/config"
	"tenisland/internal/domain"
	"tenisland/internal/favorites"
	"tenisland/internal/logger"
	"tenisland/internal/pricing"
	"tenisland/internal/storage"
)

// shell is the terminal stand-in for the browser storefront: it wires the
// stores once at start and maps commands onto their operations.
type shell struct {
	cart    *cart.Store
	favs    *favorites.Store
	remote  *favorites.Remote // non-nil when signed in
	client  *api.Client
	engine  *pricing.Engine
	orders  *checkout.Assembler
	coupon  string
	scanner *bufio.Scanner
}

func main() {
	cfg := config.Load()
	zlog := logger.New(cfg.LogLevel)
	defer func() { _ = zlog.Sync() }()

	kv, err := storage.OpenSQLite(cfg.StorePath)
	if err != nil {
		log.Fatal(err)
	}
	defer kv.Close()

	client := api.New(cfg.APIBaseURL, nil, api.StaticToken(cfg.AuthToken), zlog)
	engine := pricing.NewEngine()
	cartStore := cart.NewStore(kv, zlog)

	sh := &shell{
		cart:    cartStore,
		favs:    favorites.NewStore(kv, zlog),
		client:  client,
		engine:  engine,
		orders:  checkout.NewAssembler(cartStore, client, engine, zlog),
		scanner: bufio.NewScanner(os.Stdin),
	}

	// signed-in buyers get server-backed favorites
	if cfg.AuthToken != "" {
		remote, err := favorites.NewRemote(context.Background(), client, zlog)
		if err != nil {
			zlog.Warn("wishlist unavailable, using local favorites", zap.Error(err))
		} else {
			sh.remote = remote
		}
	}

	fmt.Println("tenisland - type 'help' for commands")
	for {
		fmt.Print("> ")
		if !sh.scanner.Scan() {
			return
		}
		line := strings.TrimSpace(sh.scanner.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		if args[0] == "quit" || args[0] == "exit" {
			return
		}
		sh.run(args[0], args[1:])
	}
}

func (s *shell) run(cmd string, args []string) {
	ctx := context.Background()
	switch cmd {
	case "help":
		fmt.Println(`products            list the catalog
brands | categories list brands / categories
add <id> [qty] [size] [color]
cart                show cart and totals
qty <lineId> <n>    set a line's quantity (0 removes)
rm <lineId>         remove a line
clear               empty the cart
coupon <code>       apply a coupon (replaces the previous one)
fav <id> | unfav <id> | favs
checkout            place the order
quit`)
	case "products":
		ps, err := s.client.Products(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, p := range ps {
			mark := " "
			if s.hasFavorite(p.ID) {
				mark = "♥"
			}
			fmt.Printf("%s %-6s %-40s R$ %s\n", mark, p.ID, p.Name, p.Price.StringFixed(2))
		}
	case "brands":
		bs, err := s.client.Brands(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, b := range bs {
			fmt.Printf("%-6s %s\n", b.ID, b.Name)
		}
	case "categories":
		cs, err := s.client.Categories(ctx)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		for _, c := range cs {
			fmt.Printf("%-6s %s\n", c.ID, c.Name)
		}
	case "add":
		if len(args) < 1 {
			fmt.Println("usage: add <id> [qty] [size] [color]")
			return
		}
		p, err := s.client.Product(ctx, args[0])
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		qty := 1
		if len(args) > 1 {
			qty, _ = strconv.Atoi(args[1])
		}
		size, color := "", ""
		if len(args) > 2 {
			size = args[2]
		}
		if len(args) > 3 {
			color = args[3]
		}
		l := s.cart.AddItem(p, qty, size, color)
		fmt.Printf("added %s x%d (line %s)\n", l.Name, l.Quantity, l.LineID)
	case "cart":
		s.printCart()
	case "qty":
		if len(args) < 2 {
			fmt.Println("usage: qty <lineId> <n>")
			return
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("quantity must be a number")
			return
		}
		s.cart.UpdateQuantity(args[0], n)
	case "rm":
		if len(args) < 1 {
			fmt.Println("usage: rm <lineId>")
			return
		}
		s.cart.RemoveItem(args[0])
	case "clear":
		s.cart.Clear()
	case "coupon":
		if len(args) < 1 {
			fmt.Println("usage: coupon <code>")
			return
		}
		q, valid := s.engine.QuoteFor(s.cart.Lines(), args[0])
		if !valid {
			fmt.Println("cupom inválido")
			return
		}
		s.coupon = args[0]
		fmt.Printf("cupom aplicado, desconto R$ %s\n", q.Discount.StringFixed(2))
	case "fav":
		if len(args) < 1 {
			fmt.Println("usage: fav <id>")
			return
		}
		p, err := s.client.Product(ctx, args[0])
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		s.addFavorite(ctx, domain.FavoriteFromProduct(p))
	case "unfav":
		if len(args) < 1 {
			fmt.Println("usage: unfav <id>")
			return
		}
		s.removeFavorite(ctx, args[0])
	case "favs":
		for _, e := range s.favoriteEntries() {
			fmt.Printf("%-6s %-40s R$ %s\n", e.ProductID, e.Name, e.Price.StringFixed(2))
		}
	case "checkout":
		s.checkout(ctx)
	default:
		fmt.Println("unknown command, try 'help'")
	}
}

func (s *shell) printCart() {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, l := range lines {
		variant := l.Size
		if l.Color != "" {
			variant += "/" + l.Color
		}
		fmt.Printf("%-36s %-30s %-8s x%-3d R$ %s\n",
			l.LineID, l.Name, variant, l.Quantity, l.LineTotal().StringFixed(2))
	}
	q, _ := s.engine.QuoteFor(lines, s.coupon)
	fmt.Printf("subtotal R$ %s  frete R$ %s", q.Subtotal.StringFixed(2), q.Shipping.StringFixed(2))
	if q.Discount.Sign() > 0 {
		fmt.Printf("  desconto -R$ %s", q.Discount.StringFixed(2))
	}
	fmt.Printf("  total R$ %s\n", q.Total.StringFixed(2))
	if missing := s.engine.AmountToFreeShipping(q.Subtotal); missing.Sign() > 0 {
		fmt.Printf("falta R$ %s para frete grátis\n", missing.StringFixed(2))
	}
}

func (s *shell) checkout(ctx context.Context) {
	if s.cart.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	buyer := domain.BuyerInfo{
		Name:       s.prompt("nome"),
		Email:      s.prompt("email"),
		Phone:      s.prompt("telefone"),
		Address:    s.prompt("endereço"),
		City:       s.prompt("cidade"),
		State:      s.prompt("estado (UF)"),
		PostalCode: s.prompt("CEP"),
	}
	method := domain.PaymentMethod(s.prompt("pagamento (credit_card/pix/boleto)"))

	req, err := s.orders.BuildPayload(buyer, method, nil, s.coupon)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	orderID, err := s.orders.Submit(ctx, req)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	s.coupon = ""
	fmt.Printf("pedido #%s criado com sucesso!\n", orderID)
}

func (s *shell) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !s.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

func (s *shell) hasFavorite(id string) bool {
	if s.remote != nil {
		return s.remote.Has(id)
	}
	return s.favs.Has(id)
}

func (s *shell) addFavorite(ctx context.Context, e domain.FavoriteEntry) {
	if s.remote != nil {
		added, err := s.remote.Add(ctx, e)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if !added {
			fmt.Println("este produto já está nos favoritos")
			return
		}
	} else if !s.favs.Add(e) {
		fmt.Println("este produto já está nos favoritos")
		return
	}
	fmt.Printf("%s adicionado aos favoritos\n", e.Name)
}

func (s *shell) removeFavorite(ctx context.Context, id string) {
	if s.remote != nil {
		if err := s.remote.Remove(ctx, id); err != nil {
			fmt.Println("error:", err)
		}
		return
	}
	s.favs.Remove(id)
}

func (s *shell) favoriteEntries() []domain.FavoriteEntry {
	if s.remote != nil {
		return s.remote.Entries()
	}
	return s.favs.Entries()
}
