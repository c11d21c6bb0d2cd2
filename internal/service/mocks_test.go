package service

import (
	"context"
	"sync"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/repository"
	"github.com/shopspring/decimal"
)

// MockRepository implements repository.CartRepository with switchable failures
type MockRepository struct {
	mu      sync.Mutex
	stored  map[string]domain.Cart
	LoadErr error
	SaveErr error
	Saves   int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{stored: make(map[string]domain.Cart)}
}

func (m *MockRepository) Load(_ context.Context, key string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	cart, ok := m.stored[key]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	clone := cart.Clone()
	return &clone, nil
}

func (m *MockRepository) Save(_ context.Context, key string, cart *domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.stored[key] = cart.Clone()
	return nil
}

func (m *MockRepository) Stored(key string) (domain.Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.stored[key]
	return cart, ok
}

// MockSubmitter answers from a queue of canned responses; the last one repeats.
type MockSubmitter struct {
	mu        sync.Mutex
	responses []submitResponse
	Payloads  []domain.OrderPayload
	// Gate, when set, holds Submit until it is closed.
	Gate    chan struct{}
	Entered chan struct{}
}

type submitResponse struct {
	result *domain.SubmitResult
	err    error
}

func (m *MockSubmitter) Then(result *domain.SubmitResult, err error) *MockSubmitter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, submitResponse{result: result, err: err})
	return m
}

func (m *MockSubmitter) Submit(_ context.Context, payload domain.OrderPayload) (*domain.SubmitResult, error) {
	if m.Entered != nil {
		m.Entered <- struct{}{}
	}
	if m.Gate != nil {
		<-m.Gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payloads = append(m.Payloads, payload)
	if len(m.responses) == 0 {
		return &domain.SubmitResult{Success: true, OrderID: "ORD-1"}, nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp.result, resp.err
}

func (m *MockSubmitter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payloads)
}

type MockExporter struct {
	mu   sync.Mutex
	Docs []domain.OrderExport
	Err  error
}

func (m *MockExporter) Export(_ context.Context, doc domain.OrderExport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Docs = append(m.Docs, doc)
	return nil
}

type MockNavigator struct {
	Opened chan string
}

func NewMockNavigator() *MockNavigator {
	return &MockNavigator{Opened: make(chan string, 4)}
}

func (m *MockNavigator) Open(_ context.Context, url string) error {
	m.Opened <- url
	return nil
}

func product(id string, price int64) domain.Product {
	return domain.Product{
		ID:        id,
		Title:     "product " + id,
		Price:     decimal.NewFromInt(price),
		Available: true,
		Category:  domain.CategoryFinishing,
	}
}

var (
	p2 = product("p2", 1490)
	p3 = product("p3", 4290)
)
