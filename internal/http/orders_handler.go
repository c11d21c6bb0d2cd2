package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderLookup reads back orders kept by the built-in order store.
type OrderLookup interface {
	GetOrderByID(ctx context.Context, id uuid.UUID) (*orders.Order, error)
}

type OrdersHandler struct {
	orders  OrderLookup
	timeout time.Duration
	logger  *zap.Logger
}

func NewOrdersHandler(lookup OrderLookup, timeout time.Duration, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{orders: lookup, timeout: timeout, logger: logger}
}

// OrderResponseDTO leaves out the customer's contact details.
type OrderResponseDTO struct {
	ID             string                `json:"id"`
	Status         string                `json:"status"`
	DeliveryMethod domain.DeliveryMethod `json:"deliveryMethod"`
	PaymentMethod  domain.PaymentMethod  `json:"paymentMethod"`
	PaymentURL     string                `json:"paymentUrl,omitempty"`
	Items          []domain.OrderLine    `json:"items"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	CreatedAt      time.Time             `json:"createdAt"`
}

func newOrderResponse(o *orders.Order) *OrderResponseDTO {
	items := o.Items
	if items == nil {
		items = []domain.OrderLine{}
	}
	return &OrderResponseDTO{
		ID:             o.ID.String(),
		Status:         string(o.Status),
		DeliveryMethod: o.DeliveryMethod,
		PaymentMethod:  o.PaymentMethod,
		PaymentURL:     o.PaymentURL,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		CreatedAt:      o.CreatedAt,
	}
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a uuid")
		return
	}

	order, err := h.orders.GetOrderByID(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, newOrderResponse(order))
}
