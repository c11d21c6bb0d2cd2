package catalog

import (
	"context"
	"errors"

	"github.com/fjod/cozy_storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FallbackSource serves from primary and switches to fallback on any
// primary error. A not-found answer from a healthy primary is final.
type FallbackSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
	group    singleflight.Group
}

func NewFallbackSource(primary, fallback Source, logger *zap.Logger) *FallbackSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackSource{primary: primary, fallback: fallback, logger: logger}
}

func (s *FallbackSource) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.listShared(ctx, "all", func(src Source) ([]domain.Product, error) {
		return src.GetAll(ctx)
	})
}

func (s *FallbackSource) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return s.listShared(ctx, "category:"+string(category), func(src Source) ([]domain.Product, error) {
		return src.GetByCategory(ctx, category)
	})
}

func (s *FallbackSource) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := s.group.Do("id:"+id, func() (any, error) {
		p, err := s.primary.GetByID(ctx, id)
		if err == nil || errors.Is(err, ErrProductNotFound) {
			return p, err
		}
		s.logger.Warn("catalog unavailable, serving bundled product",
			zap.String("product_id", id), zap.Error(err))
		return s.fallback.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	p := *v.(*domain.Product)
	return &p, nil
}

func (s *FallbackSource) listShared(ctx context.Context, key string, read func(Source) ([]domain.Product, error)) ([]domain.Product, error) {
	v, err, _ := s.group.Do(key, func() (any, error) {
		products, err := read(s.primary)
		if err == nil {
			return products, nil
		}
		s.logger.Warn("catalog unavailable, serving bundled products",
			zap.String("query", key), zap.Error(err))
		return read(s.fallback)
	})
	if err != nil {
		return nil, err
	}
	shared := v.([]domain.Product)
	out := make([]domain.Product, len(shared))
	copy(out, shared)
	return out, nil
}
