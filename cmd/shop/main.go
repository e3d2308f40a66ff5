package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	cartdomain "github.com/miniretail/checkout/internal/cart/domain"
	catalogapp "github.com/miniretail/checkout/internal/catalog/app"
	catalogdomain "github.com/miniretail/checkout/internal/catalog/domain"
	"github.com/miniretail/checkout/internal/catalog/infra/memory"
	checkoutapp "github.com/miniretail/checkout/internal/checkout/app"
	checkoutdomain "github.com/miniretail/checkout/internal/checkout/domain"
	customerdomain "github.com/miniretail/checkout/internal/customer/domain"
	shippingapp "github.com/miniretail/checkout/internal/shipping/app"
	"github.com/miniretail/checkout/pkg/config"
	"github.com/miniretail/checkout/pkg/logger"
	"github.com/miniretail/checkout/pkg/shutdown"
)

const (
	modeBrowse = iota
	modeQuantity
	modeDone
)

type model struct {
	ctx context.Context
	log *slog.Logger

	checkout *checkoutapp.Service
	customer *customerdomain.Customer
	cart     *cartdomain.Cart
	products []*catalogdomain.Product

	mode     int
	cursor   int
	qtyInput string
	status   string
	summary  string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	switch m.mode {
	case modeBrowse:
		return m.updateBrowse(key)
	case modeQuantity:
		return m.updateQuantity(key)
	default:
		return m, tea.Quit
	}
}

func (m model) updateBrowse(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "enter":
		m.mode = modeQuantity
		m.qtyInput = ""
		m.status = ""
	case "c":
		m.summary = m.runCheckout()
		m.mode = modeDone
	}
	return m, nil
}

func (m model) updateQuantity(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.mode = modeBrowse
		m.qtyInput = ""
	case "backspace":
		if len(m.qtyInput) > 0 {
			m.qtyInput = m.qtyInput[:len(m.qtyInput)-1]
		}
	case "enter":
		qty, err := strconv.ParseInt(m.qtyInput, 10, 64)
		if err != nil || qty <= 0 {
			m.status = "Invalid quantity. Try again."
			m.qtyInput = ""
			return m, nil
		}
		p := m.products[m.cursor]
		if err := m.cart.Add(p, qty); err != nil {
			m.status = fmt.Sprintf("Error: %v", err)
			m.log.Warn("cart add rejected", slog.String("product", p.Name), slog.Any("err", err))
		} else {
			m.status = fmt.Sprintf("Added %dx %s to cart.", qty, p.Name)
		}
		m.mode = modeBrowse
		m.qtyInput = ""
	default:
		s := key.String()
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.qtyInput += s
		}
	}
	return m, nil
}

func (m model) runCheckout() string {
	receipt, err := m.checkout.Checkout(m.ctx, m.customer, m.cart)
	if err != nil {
		m.log.Warn("checkout failed", slog.Any("err", err))
		return fmt.Sprintf("Error: %v\n", err)
	}
	return renderReceipt(receipt)
}

func (m model) View() string {
	if m.mode == modeDone {
		return m.summary + "\nPress any key to exit.\n"
	}

	var b strings.Builder
	b.WriteString("Available Products:\n\n")
	for i, p := range m.products {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		exp := ""
		if expiresAt, ok := p.Expirable(); ok {
			exp = fmt.Sprintf(" (expires: %s)", expiresAt.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "%s%s - $%s (%d in stock)%s\n", cursor, p.Name, p.Price.StringFixed(0), p.Quantity, exp)
	}

	b.WriteString("\n")
	if m.mode == modeQuantity {
		fmt.Fprintf(&b, "Quantity for %s: %s_\n", m.products[m.cursor].Name, m.qtyInput)
		b.WriteString("(enter to confirm, esc to cancel)\n")
	} else {
		b.WriteString("up/down select, enter add to cart, c checkout, q quit\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	if !m.cart.IsEmpty() {
		fmt.Fprintf(&b, "\nCart: %d line(s), balance $%s\n", len(m.cart.Items()), m.customer.Balance().StringFixed(2))
	}
	return b.String()
}

func renderReceipt(r checkoutdomain.Receipt) string {
	var b strings.Builder

	b.WriteString("** Shipment notice **\n")
	for _, line := range r.Shipment.Lines {
		fmt.Fprintf(&b, "%s %dg\n", line.Name, line.Grams)
	}
	fmt.Fprintf(&b, "Total package weight %.1fkg\n\n", r.Shipment.TotalWeightKg)

	b.WriteString("** Checkout receipt **\n")
	for _, line := range r.Lines {
		fmt.Fprintf(&b, "%dx %s\t%s\n", line.Quantity, line.Name, line.LineTotal.StringFixed(0))
	}
	b.WriteString("--------------------\n")
	fmt.Fprintf(&b, "Subtotal\t%s\n", r.Subtotal.StringFixed(0))
	fmt.Fprintf(&b, "Shipping\t%s\n", r.ShippingFee.StringFixed(0))
	fmt.Fprintf(&b, "Amount\t%s\n", r.Total.StringFixed(0))
	fmt.Fprintf(&b, "Balance after payment: %s\n", r.Balance.StringFixed(2))

	return b.String()
}

func seedCatalog(ctx context.Context, svc *catalogapp.Service) ([]*catalogdomain.Product, error) {
	now := time.Now()
	seeds := []*catalogdomain.Product{
		catalogdomain.NewExpirable("Cheese", decimal.NewFromInt(100), 10, 0.2, now.AddDate(0, 0, 5)),
		catalogdomain.NewExpirable("Biscuits", decimal.NewFromInt(150), 5, 0.7, now.AddDate(0, 0, 2)),
		catalogdomain.NewDurable("TV", decimal.NewFromInt(1000), 3, 8),
		catalogdomain.NewDigital("ScratchCard", decimal.NewFromInt(50), 100),
	}

	for _, p := range seeds {
		if _, err := svc.AddProduct(ctx, p); err != nil {
			return nil, fmt.Errorf("seed %s: %w", p.Name, err)
		}
	}
	return svc.ListProducts(ctx)
}

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "shop", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	catalogSvc := catalogapp.NewService(memory.NewProductRepo())
	products, err := seedCatalog(ctx, catalogSvc)
	if err != nil {
		log.Error("catalog seed failed", slog.Any("err", err))
		os.Exit(1)
	}

	checkoutSvc := checkoutapp.NewService(shippingapp.NewCalculator(), 10)
	cust := customerdomain.New("Rawan", decimal.NewFromInt(int64(cfg.SeedBalance)))

	m := model{
		ctx:      ctx,
		log:      log,
		checkout: checkoutSvc,
		customer: cust,
		cart:     cartdomain.New(),
		products: products,
	}

	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("tui error", slog.Any("err", err))
		os.Exit(1)
	}

	// Echo the final receipt or error so it survives the TUI teardown.
	if fm, ok := final.(model); ok && fm.summary != "" {
		fmt.Print(fm.summary)
	}
	log.Info("bye")
}
