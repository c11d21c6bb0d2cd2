// Package catalog reads products from the remote catalog API, falling back
// to the bundled fixture set when the API cannot be reached.
package catalog

import (
	"context"
	"errors"

	"github.com/fjod/cozy_storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Source interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}
