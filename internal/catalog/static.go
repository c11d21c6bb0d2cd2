package catalog

import (
	"context"

	"github.com/fjod/cozy_storefront/internal/domain"
)

// StaticSource serves a fixed product set from memory.
type StaticSource struct {
	products []domain.Product
}

func NewStaticSource(products []domain.Product) *StaticSource {
	return &StaticSource{products: products}
}

func (s *StaticSource) GetAll(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *StaticSource) GetByCategory(_ context.Context, category domain.Category) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *StaticSource) GetByID(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrProductNotFound
}
