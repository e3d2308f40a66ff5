package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/miniretail/checkout/internal/catalog/app"
	"github.com/miniretail/checkout/internal/catalog/domain"
)

// ProductRepo is the in-memory catalog store. Listing preserves insertion
// order so the storefront renders products in the order they were seeded.
type ProductRepo struct {
	byID  map[string]*domain.Product
	order []string
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		byID: make(map[string]*domain.Product),
	}
}

func (r *ProductRepo) Add(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *ProductRepo) Get(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, app.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
