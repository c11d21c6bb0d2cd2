package orders

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalSubmitter is the built-in order API: it validates the payload,
// stores the order and, for online payment methods, hands back a payment
// page address.
type LocalSubmitter struct {
	repo           OrderRepository
	paymentURLBase string
	logger         *zap.Logger
	now            func() time.Time
}

func NewLocalSubmitter(repo OrderRepository, paymentURLBase string, logger *zap.Logger) *LocalSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalSubmitter{repo: repo, paymentURLBase: paymentURLBase, logger: logger, now: time.Now}
}

func (s *LocalSubmitter) Submit(ctx context.Context, payload domain.OrderPayload) (*domain.SubmitResult, error) {
	if msg := validatePayload(payload); msg != "" {
		return nil, &RejectionError{Message: msg}
	}

	order := &Order{
		ID:              uuid.New(),
		Email:           payload.Email,
		FullName:        payload.FullName,
		Phone:           payload.Phone,
		DeliveryMethod:  payload.DeliveryMethod,
		DeliveryAddress: payload.DeliveryAddress,
		PaymentMethod:   payload.PaymentMethod,
		Items:           payload.Items,
		TotalAmount:     payload.TotalAmount,
		Status:          OrderStatusNew,
		CreatedAt:       s.now().UTC(),
	}

	result := &domain.SubmitResult{Success: true, OrderID: order.ID.String()}
	if payload.PaymentMethod.IsOnline() && s.paymentURLBase != "" {
		paymentID := uuid.NewString()
		order.Status = OrderStatusAwaitingPayment
		order.PaymentURL = s.paymentURL(paymentID)
		result.PaymentURL = order.PaymentURL
		result.SberbankOrderID = paymentID
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, ErrDuplicateOrder) {
			return nil, &RejectionError{Message: "order already exists"}
		}
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", result.OrderID),
		zap.String("payment_method", string(payload.PaymentMethod)),
		zap.String("total", payload.TotalAmount.String()))
	return result, nil
}

func (s *LocalSubmitter) paymentURL(paymentID string) string {
	u, err := url.Parse(s.paymentURLBase)
	if err != nil {
		return s.paymentURLBase + "?mdOrder=" + url.QueryEscape(paymentID)
	}
	q := u.Query()
	q.Set("mdOrder", paymentID)
	u.RawQuery = q.Encode()
	return u.String()
}

func validatePayload(p domain.OrderPayload) string {
	switch {
	case len(p.Items) == 0:
		return "order has no items"
	case p.FullName == "" || p.Phone == "":
		return "name and phone are required"
	case !p.DeliveryMethod.IsValid():
		return "unknown delivery method"
	case !p.PaymentMethod.IsValid():
		return "unknown payment method"
	case p.TotalAmount.IsNegative():
		return "total amount must not be negative"
	}
	for _, line := range p.Items {
		if line.ID == "" || line.Quantity <= 0 {
			return "invalid order line"
		}
	}
	return ""
}
