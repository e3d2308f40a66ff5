package domain

import (
	"errors"
	"fmt"

	catalog "github.com/miniretail/checkout/internal/catalog/domain"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// CartItem pairs a catalog product with a requested quantity. The pointer is a
// non-owning reference into the shared catalog; the cart never copies or
// mutates product state.
type CartItem struct {
	Product  *catalog.Product
	Quantity int64
}

// Cart is an ordered staging area for purchase intents. Items are appended by
// Add and only consumed by checkout; insertion order drives receipt order.
type Cart struct {
	items []CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add stages a purchase intent after checking availability against live
// catalog stock. Nothing is reserved: stock can still be consumed by a later
// checkout before this intent settles.
func (c *Cart) Add(p *catalog.Product, quantity int64) error {
	if !p.IsAvailable(quantity) {
		return fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
	}
	c.items = append(c.items, CartItem{Product: p, Quantity: quantity})
	return nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Items returns the staged line items in insertion order. Callers must treat
// the slice as read-only.
func (c *Cart) Items() []CartItem {
	return c.items
}
