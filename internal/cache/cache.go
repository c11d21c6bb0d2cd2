// Package cache holds the shared cart cache kept in front of cart storage.
package cache

import (
	"context"
	"errors"

	"github.com/fjod/cozy_storefront/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// CartCache stores carts by their storage key. Get returns ErrCacheMiss for
// keys it does not hold.
type CartCache interface {
	Get(ctx context.Context, key string) (*domain.Cart, error)
	Set(ctx context.Context, key string, cart *domain.Cart) error
	Delete(ctx context.Context, key string) error
}
