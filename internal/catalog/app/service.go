package app

import (
	"context"
	"errors"
	"strings"

	"github.com/miniretail/checkout/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) AddProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return nil, ErrInvalidInput
	}
	if p.Price.IsNegative() || p.Quantity < 0 {
		return nil, ErrInvalidInput
	}
	if facet, ok := p.Shippable(); ok && facet.WeightKg <= 0 {
		return nil, ErrInvalidInput
	}

	return s.repo.Add(ctx, p)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}
