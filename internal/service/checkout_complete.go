package service

import (
	"context"

	"github.com/fjod/cozy_storefront/internal/domain"
	"go.uber.org/zap"
)

// complete freezes the ordered cart, clears and releases the live one and,
// for online payment, opens the payment page. Must be called with c.mu held.
func (c *Checkout) complete(ctx context.Context, res *domain.SubmitResult, cart domain.Cart, payload domain.OrderPayload) {
	orderNumber := res.OrderID
	if orderNumber == "" {
		orderNumber = c.fallbackOrderNumber()
	}

	c.confirmation = &domain.OrderConfirmation{
		OrderNumber: orderNumber,
		PaymentURL:  res.PaymentURL,
		Items:       cart.Clone().Items,
		TotalPrice:  payload.TotalAmount,
		ItemsCount:  cart.ItemCount(),
		PlacedAt:    c.now().UTC(),
	}
	c.step = domain.StepSuccess
	c.cart.release(ctx, true)

	c.logger.Info("order placed",
		zap.String("order_number", orderNumber),
		zap.Int("items_count", c.confirmation.ItemsCount),
		zap.String("total", c.confirmation.TotalPrice.String()),
		zap.String("payment_method", string(c.payment)))

	if c.payment.IsOnline() && res.PaymentURL != "" && c.navigator != nil {
		url := res.PaymentURL
		navCtx := context.WithoutCancel(ctx)
		go func() {
			if err := c.navigator.Open(navCtx, url); err != nil {
				c.logger.Warn("failed to open payment page",
					zap.String("order_number", orderNumber),
					zap.Error(err))
			}
		}()
	}
}

// Export hands the placed order to the export collaborator. The error is
// returned to the caller; checkout state is never affected.
func (c *Checkout) Export(ctx context.Context) error {
	c.mu.Lock()
	if c.confirmation == nil {
		c.mu.Unlock()
		return ErrNotCompleted
	}
	doc := domain.OrderExport{
		OrderNumber:   c.confirmation.OrderNumber,
		Items:         append([]domain.CartItem(nil), c.confirmation.Items...),
		TotalPrice:    c.confirmation.TotalPrice,
		ItemsCount:    c.confirmation.ItemsCount,
		ContactData:   c.contact,
		DeliveryType:  c.delivery.Method,
		DeliveryData:  c.delivery,
		PaymentMethod: c.payment,
	}
	doc.DeliveryData.AddOns = append([]domain.AddOn(nil), c.delivery.AddOns...)
	c.mu.Unlock()

	if err := c.exporter.Export(ctx, doc); err != nil {
		c.logger.Warn("order export failed",
			zap.String("order_number", doc.OrderNumber), zap.Error(err))
		return err
	}
	return nil
}

// LogNavigator records payment redirects in the log. The HTTP API also
// returns the payment URL in the checkout state, so the client performs
// the actual redirect.
type LogNavigator struct {
	Logger *zap.Logger
}

func (n LogNavigator) Open(_ context.Context, url string) error {
	if n.Logger != nil {
		n.Logger.Info("payment page opened", zap.String("url", url))
	}
	return nil
}
