package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/cozy_storefront/internal/catalog"
	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	catalog catalog.Source
	timeout time.Duration
	logger  *zap.Logger
}

func NewProductHandler(source catalog.Source, timeout time.Duration, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{catalog: source, timeout: timeout, logger: logger}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		products []domain.Product
		err      error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		category := domain.Category(raw)
		if !category.IsKnown() && category != domain.CategoryOther {
			respondError(w, http.StatusBadRequest, "invalid_category", "unknown category "+raw)
			return
		}
		products, err = h.catalog.GetByCategory(ctx, category)
	} else {
		products, err = h.catalog.GetAll(ctx)
	}
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &CategoriesResponse{Categories: domain.Categories()})
}
