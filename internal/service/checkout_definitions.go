package service

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/orders"
	"github.com/fjod/cozy_storefront/internal/publisher"
	"go.uber.org/zap"
)

// Navigator sends the customer to an external page, such as an online
// payment form. Open runs off the request path; its error is only logged.
type Navigator interface {
	Open(ctx context.Context, url string) error
}

// Policy holds the checkout pricing switches.
type Policy struct {
	// IncludeAddOnSurcharges folds courier add-on surcharges into the
	// submitted total. Off by default: add-ons are recorded on the order
	// but not charged.
	IncludeAddOnSurcharges bool
}

// Checkout drives one session through contact, delivery and payment to a
// placed order.
type Checkout struct {
	mu sync.Mutex

	cart      *CartStore
	submitter orders.Submitter
	exporter  publisher.Exporter
	navigator Navigator
	policy    Policy
	logger    *zap.Logger
	now       func() time.Time

	step         domain.CheckoutStep
	contact      domain.ContactInfo
	delivery     domain.DeliveryInfo
	payment      domain.PaymentMethod
	submitting   bool
	confirmation *domain.OrderConfirmation
}

func NewCheckout(
	cart *CartStore,
	submitter orders.Submitter,
	exporter publisher.Exporter,
	navigator Navigator,
	policy Policy,
	logger *zap.Logger) *Checkout {

	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Checkout{
		cart:      cart,
		submitter: submitter,
		exporter:  exporter,
		navigator: navigator,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
	}
	c.resetLocked()
	return c
}

func (c *Checkout) resetLocked() {
	c.step = domain.StepContact
	c.contact = domain.ContactInfo{}
	c.delivery = domain.DeliveryInfo{Method: domain.DeliveryPickup}
	c.payment = domain.PaymentCash
	c.submitting = false
	c.confirmation = nil
}
