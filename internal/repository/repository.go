package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fjod/cozy_storefront/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists the serialized cart under a fixed key.
// Consumers define this interface, not the storage implementations.
type CartRepository interface {
	Load(ctx context.Context, key string) (*domain.Cart, error)
	Save(ctx context.Context, key string, cart *domain.Cart) error
}

func encodeCart(cart *domain.Cart) ([]byte, error) {
	if cart == nil {
		cart = &domain.Cart{}
	}
	out := *cart
	if out.Items == nil {
		out.Items = []domain.CartItem{}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

func decodeCart(data []byte) (*domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	normalized := cart.Normalize()
	return &normalized, nil
}
