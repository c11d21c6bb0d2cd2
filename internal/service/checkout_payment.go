package service

import (
	"context"
	"errors"

	"github.com/fjod/cozy_storefront/internal/domain"
	"github.com/fjod/cozy_storefront/internal/orders"
	"go.uber.org/zap"
)

// submit is entered with c.mu held and returns with it released. The lock
// is dropped for the duration of the order API call; the submitting flag
// rejects checkout operations and the cart hold rejects cart edits.
func (c *Checkout) submit(ctx context.Context) (domain.CheckoutState, error) {
	cart := c.cart.hold()
	payload := c.buildPayload(cart)
	c.submitting = true
	c.mu.Unlock()

	res, err := c.submitter.Submit(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err == nil && (res == nil || !res.Success) {
		err = &orders.RejectionError{Message: rejectionText(res)}
	}
	if err != nil {
		msg := submissionMessage(err)
		c.logger.Warn("order submission failed",
			zap.String("payment_method", string(payload.PaymentMethod)),
			zap.String("total", payload.TotalAmount.String()),
			zap.Error(err))
		c.cart.release(ctx, false)
		return c.stateLocked(), &SubmissionError{Message: msg, Err: err}
	}

	c.complete(ctx, res, cart, payload)
	return c.stateLocked(), nil
}

// submissionMessage picks the text shown to the customer. Only the order
// API's own explanation is passed through; transport errors get the
// generic message.
func submissionMessage(err error) string {
	var rej *orders.RejectionError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return genericSubmissionMessage
}

func rejectionText(res *domain.SubmitResult) string {
	if res == nil {
		return ""
	}
	if res.Error != "" {
		return res.Error
	}
	return res.Message
}
