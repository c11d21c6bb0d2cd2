package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fjod/cozy_storefront/internal/catalog"
	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SessionStore resolves the per-session cart and checkout.
type SessionStore interface {
	Get(ctx context.Context, id string) *service.Session
}

type CartHandler struct {
	sessions SessionStore
	catalog  catalog.Source
	timeout  time.Duration
	logger   *zap.Logger
}

func NewCartHandler(sessions SessionStore, source catalog.Source, timeout time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: source, timeout: timeout, logger: logger}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
}

type CartResponse struct {
	Items     []domain.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func newCartResponse(cart domain.Cart) *CartResponse {
	items := cart.Items
	if cart.IsEmpty() {
		items = []domain.CartItem{}
	}
	return &CartResponse{Items: items, Total: cart.Total(), ItemCount: cart.ItemCount()}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r.Context(), sessionID(r.Context()))
	respondJSON(w, http.StatusOK, newCartResponse(sess.Cart.Cart()))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	req.ProductID = strings.TrimSpace(req.ProductID)
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.catalog.GetByID(ctx, req.ProductID)
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	if !product.Available {
		respondError(w, http.StatusConflict, "product_unavailable", "product is not available")
		return
	}

	sess := h.sessions.Get(ctx, sessionID(ctx))
	cart, err := sess.Cart.Add(ctx, *product)
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, newCartResponse(cart))
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, s *service.CartStore, id string) (domain.Cart, error) {
		return s.Increment(ctx, id)
	})
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, s *service.CartStore, id string) (domain.Cart, error) {
		return s.Decrement(ctx, id)
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ctx context.Context, s *service.CartStore, id string) (domain.Cart, error) {
		return s.Remove(ctx, id)
	})
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sess := h.sessions.Get(ctx, sessionID(ctx))
	cart, err := sess.Cart.Clear(ctx)
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cart))
}

// mutate applies an item-level command. Unknown ids leave the cart as is.
func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, *service.CartStore, string) (domain.Cart, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID := chi.URLParam(r, "id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product id is required")
		return
	}
	sess := h.sessions.Get(ctx, sessionID(ctx))
	cart, err := op(ctx, sess.Cart, productID)
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(cart))
}
