package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/pkg/circuitbreaker"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	placeholderImage = "/images/placeholder.jpg"
	unknownBrand     = "Unknown"
)

// remoteProduct is the row shape returned by the catalog API.
type remoteProduct struct {
	ID             json.Number     `json:"id"`
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Specifications map[string]any  `json:"specifications"`
	ImageURL       *string         `json:"image_url"`
	CategoryName   *string         `json:"category_name"`
	BrandName      *string         `json:"brand_name"`
}

type productList struct {
	Products []remoteProduct `json:"products"`
}

func (p remoteProduct) toDomain() domain.Product {
	out := domain.Product{
		ID:        p.ID.String(),
		Title:     p.Name,
		Price:     p.Price,
		Brand:     unknownBrand,
		Available: true,
		Category:  domain.CategoryOther,
		Images:    []string{placeholderImage},
		Specs:     p.Specifications,
	}
	if out.Specs == nil {
		out.Specs = map[string]any{}
	}
	if p.Description != nil {
		out.ShortDescription = *p.Description
		out.Description = *p.Description
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		out.Images = []string{*p.ImageURL}
	}
	if p.CategoryName != nil && *p.CategoryName != "" {
		out.Category = domain.Category(*p.CategoryName)
	}
	if p.BrandName != nil && *p.BrandName != "" {
		out.Brand = *p.BrandName
	}
	return out
}

// RemoteSource reads products from the catalog HTTP API.
type RemoteSource struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

func NewRemoteSource(baseURL string, timeout time.Duration, logger *zap.Logger) *RemoteSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := circuitbreaker.DefaultConfig()
	cfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrProductNotFound)
	}
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: circuitbreaker.New[[]byte]("catalog", cfg, logger),
		logger:  logger,
	}
}

func (s *RemoteSource) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.list(ctx, s.baseURL+"/api/products")
}

func (s *RemoteSource) GetByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return s.list(ctx, s.baseURL+"/api/products?category="+url.QueryEscape(string(category)))
}

func (s *RemoteSource) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	body, err := s.fetch(ctx, s.baseURL+"/api/products/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	var row remoteProduct
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("failed to decode product %s: %w", id, err)
	}
	p := row.toDomain()
	return &p, nil
}

func (s *RemoteSource) list(ctx context.Context, target string) ([]domain.Product, error) {
	body, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	var resp productList
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	out := make([]domain.Product, 0, len(resp.Products))
	for _, row := range resp.Products {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *RemoteSource) fetch(ctx context.Context, target string) ([]byte, error) {
	return s.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build catalog request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrProductNotFound
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog response: %w", err)
		}
		return body, nil
	})
}
