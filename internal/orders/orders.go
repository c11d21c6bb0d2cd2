// Package orders hands assembled checkout payloads to the order API, either
// the remote HTTP service or the built-in Postgres-backed one.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateOrder  = errors.New("order already exists")
	ErrOrderRejected   = errors.New("order rejected")
	ErrInvalidResponse = errors.New("invalid order api response")
)

// Submitter creates an order from a checkout payload. A nil error with
// Success false is never returned; rejections come back as errors.
type Submitter interface {
	Submit(ctx context.Context, payload domain.OrderPayload) (*domain.SubmitResult, error)
}

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusAwaitingPayment OrderStatus = "AWAITING_PAYMENT"
)

// Order is the persisted form of an accepted payload.
type Order struct {
	ID              uuid.UUID
	Email           string
	FullName        string
	Phone           string
	DeliveryMethod  domain.DeliveryMethod
	DeliveryAddress *string
	PaymentMethod   domain.PaymentMethod
	Items           []domain.OrderLine
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	PaymentURL      string
	CreatedAt       time.Time
}

// RejectionError carries the order API's own explanation.
type RejectionError struct {
	Status  int
	Message string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return ErrOrderRejected.Error()
	}
	return e.Message
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrOrderRejected
}
