package repository

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"github.com/fjod/cozy_storefront/internal/cache"
	"github.com/fjod/cozy_storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheOpTimeout = time.Second

// CachedRepository puts a cart cache in front of another repository.
// Saves write through to the cache. A miss fills the cache before Load
// returns, and fills and saves of one key never interleave, so the cache
// cannot be left holding an older cart than the base. Cache failures are
// logged and never fail the call.
type CachedRepository struct {
	base  CartRepository
	cache cache.CartCache
	log   *zap.Logger
	sfg   singleflight.Group // Prevents cache stampede
	locks [16]sync.Mutex
}

func NewCachedRepository(base CartRepository, c cache.CartCache, log *zap.Logger) *CachedRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &CachedRepository{base: base, cache: c, log: log}
}

func (r *CachedRepository) keyLock(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &r.locks[h.Sum32()%uint32(len(r.locks))]
}

func (r *CachedRepository) Load(ctx context.Context, key string) (*domain.Cart, error) {
	v, err, _ := r.sfg.Do(key, func() (interface{}, error) {
		cart, err := r.cache.Get(ctx, key)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.log.Warn("cache get error", zap.String("key", key), zap.Error(err))
		}

		mu := r.keyLock(key)
		mu.Lock()
		defer mu.Unlock()

		cart, err = r.base.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		r.fill(key, cart.Clone())
		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	cart := v.(*domain.Cart).Clone()
	return &cart, nil
}

func (r *CachedRepository) Save(ctx context.Context, key string, cart *domain.Cart) error {
	mu := r.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	if err := r.base.Save(ctx, key, cart); err != nil {
		return err
	}
	if !r.fill(key, cart.Clone()) {
		r.invalidate(key)
	}
	return nil
}

// fill stores cart under key and reports whether it succeeded.
func (r *CachedRepository) fill(key string, cart domain.Cart) bool {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := r.cache.Set(ctx, key, &cart); err != nil {
		r.log.Warn("cache set error", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *CachedRepository) invalidate(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := r.cache.Delete(ctx, key); err != nil {
		r.log.Warn("cache invalidate error", zap.String("key", key), zap.Error(err))
	}
}
