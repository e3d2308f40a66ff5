package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cart "github.com/miniretail/checkout/internal/cart/domain"
	catalog "github.com/miniretail/checkout/internal/catalog/domain"
	customer "github.com/miniretail/checkout/internal/customer/domain"
	shippingapp "github.com/miniretail/checkout/internal/shipping/app"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	cust   *customer.Customer
	cheese *catalog.Product
	tv     *catalog.Product
	card   *catalog.Product
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()

	svc := NewService(shippingapp.NewCalculator(), 4)
	svc.now = func() time.Time { return testNow }

	return &fixture{
		svc:    svc,
		cust:   customer.New("Rawan", decimal.NewFromInt(balance)),
		cheese: catalog.NewExpirable("Cheese", decimal.NewFromInt(100), 10, 0.2, testNow.AddDate(0, 0, 5)),
		tv:     catalog.NewDurable("TV", decimal.NewFromInt(1000), 3, 8),
		card:   catalog.NewDigital("ScratchCard", decimal.NewFromInt(50), 100),
	}
}

func requireDecimal(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, 1000)

	_, err := f.svc.Checkout(context.Background(), f.cust, cart.New())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, 1000)

	c := cart.New()
	require.NoError(t, c.Add(f.cheese, 2))
	require.NoError(t, c.Add(f.tv, 1))
	require.NoError(t, c.Add(f.card, 3))

	// subtotal 200+1000+150 = 1350, shipping 10*(2+1) = 30, total 1380 > 1000.
	_, err := f.svc.Checkout(context.Background(), f.cust, c)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	require.EqualValues(t, 10, f.cheese.Quantity)
	require.EqualValues(t, 3, f.tv.Quantity)
	require.EqualValues(t, 100, f.card.Quantity)
	requireDecimal(t, 1000, f.cust.Balance())

	// The cart survives the failure so the caller can correct it.
	require.Len(t, c.Items(), 3)
}

func TestCheckoutSuccess(t *testing.T) {
	f := newFixture(t, 1000)

	c := cart.New()
	require.NoError(t, c.Add(f.cheese, 2))
	require.NoError(t, c.Add(f.card, 3))

	receipt, err := f.svc.Checkout(context.Background(), f.cust, c)
	require.NoError(t, err)

	requireDecimal(t, 350, receipt.Subtotal)
	requireDecimal(t, 20, receipt.ShippingFee)
	requireDecimal(t, 370, receipt.Total)
	requireDecimal(t, 630, receipt.Balance)

	require.Len(t, receipt.Lines, 2)
	require.Equal(t, "Cheese", receipt.Lines[0].Name)
	require.EqualValues(t, 2, receipt.Lines[0].Quantity)
	requireDecimal(t, 200, receipt.Lines[0].LineTotal)
	require.Equal(t, "ScratchCard", receipt.Lines[1].Name)
	requireDecimal(t, 150, receipt.Lines[1].LineTotal)

	require.Len(t, receipt.Shipment.Lines, 2)
	for _, line := range receipt.Shipment.Lines {
		require.Equal(t, "Cheese", line.Name)
		require.EqualValues(t, 200, line.Grams)
	}
	require.Equal(t, 0.4, receipt.Shipment.TotalWeightKg)

	require.EqualValues(t, 8, f.cheese.Quantity)
	require.EqualValues(t, 97, f.card.Quantity)
	requireDecimal(t, 630, f.cust.Balance())
}

func TestCheckoutOutOfStock(t *testing.T) {
	f := newFixture(t, 10000)

	c := cart.New()
	require.NoError(t, c.Add(f.tv, 3))
	require.NoError(t, c.Add(f.cheese, 2))

	// Stock consumed between add and checkout: intents are never reserved.
	f.tv.ReduceQuantity(2)

	_, err := f.svc.Checkout(context.Background(), f.cust, c)
	require.ErrorIs(t, err, ErrOutOfStock)
	require.Contains(t, err.Error(), "TV")

	require.EqualValues(t, 1, f.tv.Quantity)
	require.EqualValues(t, 10, f.cheese.Quantity)
	requireDecimal(t, 10000, f.cust.Balance())
}

func TestCheckoutExpired(t *testing.T) {
	f := newFixture(t, 10000)
	stale := catalog.NewExpirable("Biscuits", decimal.NewFromInt(150), 5, 0.7, testNow.AddDate(0, 0, -1))

	c := cart.New()
	require.NoError(t, c.Add(f.cheese, 1))
	require.NoError(t, c.Add(stale, 1))

	_, err := f.svc.Checkout(context.Background(), f.cust, c)
	require.ErrorIs(t, err, ErrExpired)
	require.Contains(t, err.Error(), "Biscuits")

	// An earlier line must not have been settled before the failure.
	require.EqualValues(t, 10, f.cheese.Quantity)
	require.EqualValues(t, 5, stale.Quantity)
	requireDecimal(t, 10000, f.cust.Balance())
}

func TestCheckoutExpiryBoundary(t *testing.T) {
	f := newFixture(t, 1000)
	edge := catalog.NewExpirable("Cheese", decimal.NewFromInt(100), 10, 0.2, testNow)

	c := cart.New()
	require.NoError(t, c.Add(edge, 1))

	// Expiring exactly now is not expired.
	receipt, err := f.svc.Checkout(context.Background(), f.cust, c)
	require.NoError(t, err)
	requireDecimal(t, 110, receipt.Total)
}

func TestCheckoutDigitalNeverShips(t *testing.T) {
	f := newFixture(t, 10000)

	c := cart.New()
	require.NoError(t, c.Add(f.card, 50))

	receipt, err := f.svc.Checkout(context.Background(), f.cust, c)
	require.NoError(t, err)

	require.Empty(t, receipt.Shipment.Lines)
	require.Zero(t, receipt.Shipment.TotalWeightKg)
	requireDecimal(t, 0, receipt.ShippingFee)
	requireDecimal(t, 2500, receipt.Total)
}

func TestCheckoutShippingFeeAdditivity(t *testing.T) {
	run := func(t *testing.T, addOrder func(c *cart.Cart, f *fixture)) decimal.Decimal {
		t.Helper()
		f := newFixture(t, 100000)
		c := cart.New()
		addOrder(c, f)
		receipt, err := f.svc.Checkout(context.Background(), f.cust, c)
		require.NoError(t, err)
		return receipt.ShippingFee
	}

	fee1 := run(t, func(c *cart.Cart, f *fixture) {
		require.NoError(t, c.Add(f.cheese, 2))
		require.NoError(t, c.Add(f.tv, 1))
		require.NoError(t, c.Add(f.card, 3))
	})
	fee2 := run(t, func(c *cart.Cart, f *fixture) {
		require.NoError(t, c.Add(f.card, 3))
		require.NoError(t, c.Add(f.tv, 1))
		require.NoError(t, c.Add(f.cheese, 2))
	})

	// 10 per shippable unit: 10 * (2 + 1), independent of line order.
	requireDecimal(t, 30, fee1)
	require.True(t, fee1.Equal(fee2))
}

func TestQuote(t *testing.T) {
	f := newFixture(t, 1000)

	t.Run("empty cart", func(t *testing.T) {
		_, err := f.svc.Quote(context.Background(), cart.New())
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("prices without settling", func(t *testing.T) {
		c := cart.New()
		require.NoError(t, c.Add(f.cheese, 2))
		require.NoError(t, c.Add(f.tv, 1))
		require.NoError(t, c.Add(f.card, 3))

		quote, err := f.svc.Quote(context.Background(), c)
		require.NoError(t, err)

		require.Len(t, quote.Lines, 3)
		requireDecimal(t, 1350, quote.Subtotal)
		requireDecimal(t, 30, quote.ShippingFee)
		requireDecimal(t, 1380, quote.Total)
		require.Equal(t, "Cheese", quote.Lines[0].Name)
		requireDecimal(t, 100, quote.Lines[0].UnitPrice)

		require.EqualValues(t, 10, f.cheese.Quantity)
		require.EqualValues(t, 3, f.tv.Quantity)
		requireDecimal(t, 1000, f.cust.Balance())
	})
}

func TestCheckoutErrorTaxonomy(t *testing.T) {
	// Every checkout failure is terminal and distinguishable with errors.Is.
	sentinels := []error{ErrEmptyCart, ErrOutOfStock, ErrExpired, ErrInsufficientBalance}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				require.False(t, errors.Is(a, b))
			}
		}
	}
}
