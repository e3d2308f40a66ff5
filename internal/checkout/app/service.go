package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	cart "github.com/miniretail/checkout/internal/cart/domain"
	"github.com/miniretail/checkout/internal/checkout/domain"
	customer "github.com/miniretail/checkout/internal/customer/domain"
	shipping "github.com/miniretail/checkout/internal/shipping/domain"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrOutOfStock          = errors.New("product out of stock")
	ErrExpired             = errors.New("product expired")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// perUnitShippingRate is the flat fee charged for every shippable unit.
var perUnitShippingRate = decimal.NewFromInt(10)

type ShippingCalculator interface {
	Ship(items []shipping.ShipmentItem) shipping.ShipmentNotice
}

// Service runs checkout as a one-shot transaction over in-memory state.
type Service struct {
	shipper ShippingCalculator

	now           func() time.Time
	maxConcurrent int
}

func NewService(shipper ShippingCalculator, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		shipper:       shipper,
		now:           time.Now,
		maxConcurrent: maxConcurrent,
	}
}

// Checkout validates every cart line, then settles: reduce stock, price the
// shipment, deduct the total. Validation and settlement are separate passes so
// a failure on any line leaves every product quantity and the customer balance
// exactly as they were. The operation is one-shot; the caller may fix the cart
// and invoke it again.
func (s *Service) Checkout(ctx context.Context, cust *customer.Customer, crt *cart.Cart) (domain.Receipt, error) {
	if crt.IsEmpty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	now := s.now()
	items := crt.Items()

	subtotal := decimal.Zero
	shippingFee := decimal.Zero
	lines := make([]domain.ReceiptLine, 0, len(items))
	var shipmentItems []shipping.ShipmentItem

	// Validation pass: no mutation until every line has been checked.
	for _, item := range items {
		p := item.Product
		if !p.IsAvailable(item.Quantity) {
			return domain.Receipt{}, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		if p.IsExpiredAt(now) {
			return domain.Receipt{}, fmt.Errorf("%w: %s", ErrExpired, p.Name)
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(item.Quantity))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, domain.ReceiptLine{
			Quantity:  item.Quantity,
			Name:      p.Name,
			LineTotal: lineTotal,
		})

		if facet, ok := p.Shippable(); ok {
			shippingFee = shippingFee.Add(perUnitShippingRate.Mul(decimal.NewFromInt(item.Quantity)))
			// One shipment entry per unit so the notice reports unit weights.
			for i := int64(0); i < item.Quantity; i++ {
				shipmentItems = append(shipmentItems, shipping.ShipmentItem{
					Name:     p.Name,
					WeightKg: facet.WeightKg,
				})
			}
		}
	}

	total := subtotal.Add(shippingFee)
	if cust.Balance().LessThan(total) {
		return domain.Receipt{}, ErrInsufficientBalance
	}

	// Commit pass.
	for _, item := range items {
		item.Product.ReduceQuantity(item.Quantity)
	}
	notice := s.shipper.Ship(shipmentItems)
	cust.Deduct(total)

	return domain.Receipt{
		Lines:       lines,
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       total,
		Shipment:    notice,
		Balance:     cust.Balance(),
	}, nil
}

// Quote prices the cart without settling it: no stock check, no mutation.
// Lines are priced concurrently with a bounded fan-out.
func (s *Service) Quote(ctx context.Context, crt *cart.Cart) (domain.Quote, error) {
	if crt.IsEmpty() {
		return domain.Quote{}, ErrEmptyCart
	}

	items := crt.Items()
	lines := make([]domain.QuoteLine, len(items))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range items {
		idx := idx
		g.Go(func() error {
			it := items[idx]
			if it.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", it.Quantity)
			}

			lines[idx] = domain.QuoteLine{
				Name:      it.Product.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.Product.Price,
				LineTotal: it.Product.Price.Mul(decimal.NewFromInt(it.Quantity)),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Quote{}, err
	}

	subtotal := decimal.Zero
	shippingFee := decimal.Zero
	for i, line := range lines {
		subtotal = subtotal.Add(line.LineTotal)
		if _, ok := items[i].Product.Shippable(); ok {
			shippingFee = shippingFee.Add(perUnitShippingRate.Mul(decimal.NewFromInt(line.Quantity)))
		}
	}

	return domain.Quote{
		Lines:       lines,
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal.Add(shippingFee),
	}, nil
}
