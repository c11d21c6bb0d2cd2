package service

import (
	"context"
	"strings"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// mutable reports why the wizard data cannot change right now, if it can't.
// Must be called with c.mu held.
func (c *Checkout) mutable() error {
	if c.submitting {
		return ErrSubmissionInFlight
	}
	if c.step.IsTerminal() {
		return ErrCheckoutCompleted
	}
	return nil
}

func (c *Checkout) SetContact(info domain.ContactInfo) (domain.CheckoutState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutable(); err != nil {
		return c.stateLocked(), err
	}
	c.contact = info
	return c.stateLocked(), nil
}

func (c *Checkout) SetDelivery(info domain.DeliveryInfo) (domain.CheckoutState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutable(); err != nil {
		return c.stateLocked(), err
	}
	if !info.Method.IsValid() {
		return c.stateLocked(), &ValidationError{Field: "method", Message: "unknown delivery method"}
	}
	selected := info
	selected.AddOns = nil
	for _, a := range info.AddOns {
		if !a.IsValid() {
			return c.stateLocked(), &ValidationError{Field: "addOns", Message: "unknown delivery service " + string(a)}
		}
		if !selected.HasAddOn(a) {
			selected.AddOns = append(selected.AddOns, a)
		}
	}
	c.delivery = selected
	return c.stateLocked(), nil
}

func (c *Checkout) SetPayment(method domain.PaymentMethod) (domain.CheckoutState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutable(); err != nil {
		return c.stateLocked(), err
	}
	if !method.IsValid() {
		return c.stateLocked(), &ValidationError{Field: "paymentMethod", Message: "unknown payment method"}
	}
	c.payment = method
	return c.stateLocked(), nil
}

// Next advances one step. From payment it submits the order and blocks
// until the order API answers; on failure the wizard stays on payment with
// all entered data intact.
func (c *Checkout) Next(ctx context.Context) (domain.CheckoutState, error) {
	c.mu.Lock()

	if err := c.mutable(); err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}
	to, ok := domain.NextStep(c.step, domain.EventNext)
	if !ok {
		defer c.mu.Unlock()
		return c.stateLocked(), ErrIllegalTransition
	}
	if err := c.guardLocked(); err != nil {
		defer c.mu.Unlock()
		return c.stateLocked(), err
	}

	if to == domain.StepSuccess {
		// submit releases the lock while the order API is called
		return c.submit(ctx)
	}

	defer c.mu.Unlock()
	c.logger.Debug("checkout step advanced",
		zap.String("from", c.step.String()),
		zap.String("to", to.String()))
	c.step = to
	return c.stateLocked(), nil
}

func (c *Checkout) Back() (domain.CheckoutState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutable(); err != nil {
		return c.stateLocked(), err
	}
	to, ok := domain.NextStep(c.step, domain.EventBack)
	if !ok {
		return c.stateLocked(), ErrIllegalTransition
	}
	c.step = to
	return c.stateLocked(), nil
}

// Reset abandons the checkout and starts over at contact. Nothing was
// committed before success, so there is nothing to undo.
func (c *Checkout) Reset() (domain.CheckoutState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return c.stateLocked(), ErrSubmissionInFlight
	}
	c.resetLocked()
	return c.stateLocked(), nil
}

// guardLocked validates the data the current step collects.
func (c *Checkout) guardLocked() error {
	switch c.step {
	case domain.StepContact:
		if strings.TrimSpace(c.contact.Name) == "" {
			return &ValidationError{Field: "name", Message: "name is required"}
		}
		if strings.TrimSpace(c.contact.Phone) == "" {
			return &ValidationError{Field: "phone", Message: "phone is required"}
		}
	case domain.StepDelivery:
		if c.delivery.Method == domain.DeliveryCourier && strings.TrimSpace(c.delivery.Address) == "" {
			return &ValidationError{Field: "address", Message: "address is required for delivery"}
		}
	}
	return nil
}

func (c *Checkout) State() domain.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Total is the live cart total before success and the placed order total
// after it.
func (c *Checkout) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalLocked()
}

func (c *Checkout) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmation != nil {
		return c.confirmation.ItemsCount
	}
	return c.cart.ItemCount()
}

// Items lists what is being ordered: the live cart, or the frozen lines
// once the order is placed.
func (c *Checkout) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmation != nil {
		return append([]domain.CartItem(nil), c.confirmation.Items...)
	}
	return c.cart.Cart().Items
}

func (c *Checkout) totalLocked() decimal.Decimal {
	if c.confirmation != nil {
		return c.confirmation.TotalPrice
	}
	return c.orderTotal(c.cart.Cart())
}

// orderTotal applies the surcharge policy to a cart total.
func (c *Checkout) orderTotal(cart domain.Cart) decimal.Decimal {
	total := cart.Total()
	if c.policy.IncludeAddOnSurcharges {
		total = total.Add(c.delivery.AddOnSurcharge())
	}
	return total
}

func (c *Checkout) stateLocked() domain.CheckoutState {
	state := domain.CheckoutState{
		Step:           c.step,
		CompletedSteps: domain.CompletedSteps(c.step),
		Contact:        c.contact,
		Delivery:       c.delivery,
		Payment:        c.payment,
		Submitting:     c.submitting,
		Total:          c.totalLocked(),
		AddOnSurcharge: c.delivery.AddOnSurcharge(),
	}
	if c.delivery.AddOns != nil {
		state.Delivery.AddOns = append([]domain.AddOn(nil), c.delivery.AddOns...)
	}
	if c.confirmation != nil {
		conf := *c.confirmation
		conf.Items = append([]domain.CartItem(nil), c.confirmation.Items...)
		state.Confirmation = &conf
		state.ItemsCount = conf.ItemsCount
	} else {
		state.ItemsCount = c.cart.ItemCount()
	}
	state.CourierFee = domain.CourierFee(state.Total)
	return state
}
