package app

import (
	"context"

	"github.com/miniretail/checkout/internal/catalog/domain"
)

// ProductRepo hands out pointers into the shared catalog. Callers that hold a
// *Product (carts, the checkout engine) observe and apply stock mutations on
// the same instance the repo stores.
type ProductRepo interface {
	Add(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
