package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartStore owns one session's cart. Every mutation goes through
// domain.Apply and is then written through to the repository. Storage
// failures are logged; the in-memory cart stays authoritative.
type CartStore struct {
	mu     sync.Mutex
	cart   domain.Cart
	repo   repository.CartRepository
	key    string
	logger *zap.Logger

	// held is set while the cart is out for an order submission.
	held bool
}

// NewCartStore restores the cart stored under key. A missing or unreadable
// record starts an empty cart.
func NewCartStore(ctx context.Context, repo repository.CartRepository, key string, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CartStore{
		cart:   domain.Cart{Items: []domain.CartItem{}},
		repo:   repo,
		key:    key,
		logger: logger.With(zap.String("cart_key", key)),
	}

	stored, err := repo.Load(ctx, key)
	switch {
	case errors.Is(err, repository.ErrCartNotFound):
	case err != nil:
		s.logger.Warn("failed to restore cart, starting empty", zap.Error(err))
	case stored != nil:
		s.cart = stored.Normalize()
	}
	return s
}

// Dispatch applies cmd and persists the result. While an order for this
// cart is being submitted the cart is frozen and ErrSubmissionInFlight is
// returned with the unchanged cart.
func (s *CartStore) Dispatch(ctx context.Context, cmd domain.Command) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.held {
		return s.cart.Clone(), ErrSubmissionInFlight
	}
	s.cart = domain.Apply(s.cart, cmd)
	s.persist(ctx, cmd)
	return s.cart.Clone(), nil
}

func (s *CartStore) Add(ctx context.Context, product domain.Product) (domain.Cart, error) {
	if product.ID == "" {
		return s.Cart(), ErrInvalidProduct
	}
	return s.Dispatch(ctx, domain.Add{Product: product})
}

func (s *CartStore) Remove(ctx context.Context, productID string) (domain.Cart, error) {
	return s.Dispatch(ctx, domain.Remove{ProductID: productID})
}

func (s *CartStore) Increment(ctx context.Context, productID string) (domain.Cart, error) {
	return s.Dispatch(ctx, domain.Increment{ProductID: productID})
}

func (s *CartStore) Decrement(ctx context.Context, productID string) (domain.Cart, error) {
	return s.Dispatch(ctx, domain.Decrement{ProductID: productID})
}

func (s *CartStore) Clear(ctx context.Context) (domain.Cart, error) {
	return s.Dispatch(ctx, domain.Clear{})
}

// hold freezes the cart and returns the snapshot being ordered.
func (s *CartStore) hold() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = true
	return s.cart.Clone()
}

// release unfreezes the cart. When the order was placed the cart is
// cleared in the same critical section.
func (s *CartStore) release(ctx context.Context, placed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held = false
	if placed {
		s.cart = domain.Apply(s.cart, domain.Clear{})
		s.persist(ctx, domain.Clear{})
	}
}

// Cart returns a copy of the current cart.
func (s *CartStore) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *CartStore) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// persist must be called with s.mu held.
func (s *CartStore) persist(ctx context.Context, cmd domain.Command) {
	snapshot := s.cart.Clone()
	if err := s.repo.Save(ctx, s.key, &snapshot); err != nil {
		s.logger.Warn("failed to persist cart",
			zap.String("command", cmd.Name()),
			zap.Error(err))
	}
}
