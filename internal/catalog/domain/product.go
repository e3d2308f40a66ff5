package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingFacet carries the physical attributes a product needs to appear in
// shipment accounting. Products without the facet never ship.
type ShippingFacet struct {
	WeightKg float64
}

type expiryFacet struct {
	ExpiresAt time.Time
}

// Product is a catalog entry. Shipping and expiry are independent capabilities
// attached as optional facets, not subtypes: a product may carry none, one, or
// both. Quantity is mutated only by the checkout engine during settlement.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int64

	shipping *ShippingFacet
	expiry   *expiryFacet
}

// NewExpirable builds a product that both ships and expires, e.g. groceries.
func NewExpirable(name string, price decimal.Decimal, quantity int64, weightKg float64, expiresAt time.Time) *Product {
	return &Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		shipping: &ShippingFacet{WeightKg: weightKg},
		expiry:   &expiryFacet{ExpiresAt: expiresAt},
	}
}

// NewDurable builds a product that ships but never expires, e.g. electronics.
func NewDurable(name string, price decimal.Decimal, quantity int64, weightKg float64) *Product {
	return &Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
		shipping: &ShippingFacet{WeightKg: weightKg},
	}
}

// NewDigital builds a product with no physical presence and no expiry.
func NewDigital(name string, price decimal.Decimal, quantity int64) *Product {
	return &Product{
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
}

// IsAvailable reports whether current stock covers the requested quantity.
func (p *Product) IsAvailable(requested int64) bool {
	return p.Quantity >= requested
}

// ReduceQuantity decrements stock. The caller must have verified availability;
// the method does not re-check.
func (p *Product) ReduceQuantity(qty int64) {
	p.Quantity -= qty
}

// IsExpiredAt reports whether the product is past its expiry at the given
// instant. The boundary is exclusive: a product expiring exactly now is still
// good. Products without an expiry facet never expire.
func (p *Product) IsExpiredAt(now time.Time) bool {
	if p.expiry == nil {
		return false
	}
	return now.After(p.expiry.ExpiresAt)
}

// Shippable returns the shipping facet and whether the product has one.
func (p *Product) Shippable() (ShippingFacet, bool) {
	if p.shipping == nil {
		return ShippingFacet{}, false
	}
	return *p.shipping, true
}

// Expirable returns the expiry timestamp and whether the product has one.
func (p *Product) Expirable() (time.Time, bool) {
	if p.expiry == nil {
		return time.Time{}, false
	}
	return p.expiry.ExpiresAt, true
}
