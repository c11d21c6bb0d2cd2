package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/service"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	sessions SessionStore
	timeout  time.Duration
	logger   *zap.Logger
}

func NewCheckoutHandler(sessions SessionStore, timeout time.Duration, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, timeout: timeout, logger: logger}
}

type PaymentRequestDTO struct {
	Method domain.PaymentMethod `json:"method"`
}

type CheckoutResponse struct {
	domain.CheckoutState
	Items []domain.CartItem `json:"items"`
}

type ExportResponse struct {
	Status      string `json:"status"`
	OrderNumber string `json:"orderNumber"`
}

func (h *CheckoutHandler) checkout(ctx context.Context) *service.Checkout {
	return h.sessions.Get(ctx, sessionID(ctx)).Checkout
}

func (h *CheckoutHandler) respondState(w http.ResponseWriter, c *service.Checkout, state domain.CheckoutState) {
	items := c.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(w, http.StatusOK, &CheckoutResponse{CheckoutState: state, Items: items})
}

func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	c := h.checkout(r.Context())
	h.respondState(w, c, c.State())
}

func (h *CheckoutHandler) SetContact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c := h.checkout(r.Context())
	state, err := c.SetContact(req)
	h.finish(w, r, c, state, err)
}

func (h *CheckoutHandler) SetDelivery(w http.ResponseWriter, r *http.Request) {
	var req domain.DeliveryInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c := h.checkout(r.Context())
	state, err := c.SetDelivery(req)
	h.finish(w, r, c, state, err)
}

func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	c := h.checkout(r.Context())
	state, err := c.SetPayment(req.Method)
	h.finish(w, r, c, state, err)
}

// Next advances the wizard; from payment it places the order.
func (h *CheckoutHandler) Next(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c := h.checkout(ctx)
	state, err := c.Next(ctx)
	h.finish(w, r, c, state, err)
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	c := h.checkout(r.Context())
	state, err := c.Back()
	h.finish(w, r, c, state, err)
}

func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	c := h.checkout(r.Context())
	state, err := c.Reset()
	h.finish(w, r, c, state, err)
}

func (h *CheckoutHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	c := h.checkout(ctx)
	if err := c.Export(ctx); err != nil {
		if status, _ := errorKind(err); status == http.StatusInternalServerError {
			respondError(w, http.StatusBadGateway, "export_failed", "failed to export order")
			return
		}
		handleServiceError(ctx, w, h.logger, err)
		return
	}

	resp := &ExportResponse{Status: "exported"}
	if conf := c.State().Confirmation; conf != nil {
		resp.OrderNumber = conf.OrderNumber
	}
	respondJSON(w, http.StatusAccepted, resp)
}

func (h *CheckoutHandler) finish(w http.ResponseWriter, r *http.Request, c *service.Checkout, state domain.CheckoutState, err error) {
	if err != nil {
		handleServiceError(r.Context(), w, h.logger, err)
		return
	}
	h.respondState(w, c, state)
}
