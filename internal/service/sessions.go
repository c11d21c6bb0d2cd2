package service

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/cozy_storefront/internal/orders"
	"github.com/fjod/cozy_storefront/internal/publisher"
	"github.com/fjod/cozy_storefront/internal/repository"
	"go.uber.org/zap"
)

// SessionCleanupInterval is how often idle sessions are looked for.
const SessionCleanupInterval = 30 * time.Second

// CartKey is the storage key of a session's cart.
func CartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Session pairs the cart and the checkout of one browser session.
type Session struct {
	ID       string
	Cart     *CartStore
	Checkout *Checkout

	lastSeen time.Time
}

type SessionDeps struct {
	Repo      repository.CartRepository
	Submitter orders.Submitter
	Exporter  publisher.Exporter
	Navigator Navigator
	Policy    Policy
	Logger    *zap.Logger
}

// Sessions keeps live sessions in memory and drops the ones idle for
// longer than ttl. Dropping a session abandons its checkout; the cart
// stays in the repository and is restored on the next visit.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     SessionDeps
	ttl      time.Duration
	now      func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewSessions(deps SessionDeps, ttl time.Duration) *Sessions {
	return newSessions(deps, ttl, SessionCleanupInterval)
}

func newSessions(deps SessionDeps, ttl, interval time.Duration) *Sessions {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	s := &Sessions{
		sessions:    make(map[string]*Session),
		deps:        deps,
		ttl:         ttl,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop(interval)
	return s
}

// Get returns the session for id, creating it on first use.
func (s *Sessions) Get(ctx context.Context, id string) *Session {
	s.mu.Lock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		s.mu.Unlock()
		return sess
	}
	s.mu.Unlock()

	// build outside the lock: restoring the cart hits storage
	created := s.build(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = s.now()
		return sess
	}
	created.lastSeen = s.now()
	s.sessions[id] = created
	return created
}

func (s *Sessions) build(ctx context.Context, id string) *Session {
	logger := s.deps.Logger.With(zap.String("session_id", id))
	cart := NewCartStore(ctx, s.deps.Repo, CartKey(id), logger)
	return &Session{
		ID:       id,
		Cart:     cart,
		Checkout: NewCheckout(cart, s.deps.Submitter, s.deps.Exporter, s.deps.Navigator, s.deps.Policy, logger),
	}
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Sessions) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

// expireSessions drops sessions idle past the ttl. A session with an order
// submission in flight is kept until the submission resolves.
func (s *Sessions) expireSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.sessions {
		if sess.lastSeen.After(cutoff) || sess.Checkout.State().Submitting {
			continue
		}
		delete(s.sessions, id)
		s.deps.Logger.Debug("session expired", zap.String("session_id", id))
	}
}

// Close stops the background cleanup and waits for it to finish
func (s *Sessions) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
