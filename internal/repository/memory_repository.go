package repository

import (
	"context"
	"sync"

	"github.com/fjod/cozy_storefront/internal/domain"
)

// MemoryRepository keeps serialized carts in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string][]byte)}
}

func (m *MemoryRepository) Load(_ context.Context, key string) (*domain.Cart, error) {
	m.mu.RLock()
	data, ok := m.carts[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCartNotFound
	}
	return decodeCart(data)
}

func (m *MemoryRepository) Save(_ context.Context, key string, cart *domain.Cart) error {
	data, err := encodeCart(cart)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.carts[key] = data
	m.mu.Unlock()
	return nil
}

// Raw returns the stored bytes for key.
func (m *MemoryRepository) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.carts[key]
	return data, ok
}

// SetRaw stores data for key as is.
func (m *MemoryRepository) SetRaw(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[key] = data
}
