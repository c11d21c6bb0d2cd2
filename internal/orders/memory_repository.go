package orders

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository keeps orders in process memory. It backs the built-in
// order API when no database is configured.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]Order
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[uuid.UUID]Order)}
}

func (m *MemoryRepository) CreateOrder(_ context.Context, order *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[order.ID]; ok {
		return ErrDuplicateOrder
	}
	stored := *order
	stored.Items = append(stored.Items[:0:0], order.Items...)
	m.orders[order.ID] = stored
	return nil
}

func (m *MemoryRepository) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	order.Items = append(order.Items[:0:0], order.Items...)
	return &order, nil
}

func (m *MemoryRepository) Close() error {
	return nil
}
