package service

import (
	"fmt"
	"strings"

	"github.com/fjod/cozy_storefront/internal/domain"
)

// orderLines maps cart items to the line shape the order API expects.
func orderLines(cart domain.Cart) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.OrderLine{
			ID:       item.Product.ID,
			Title:    item.Product.Title,
			Price:    item.Product.Price,
			Quantity: item.Qty,
		})
	}
	return lines
}

// buildPayload must be called with c.mu held.
func (c *Checkout) buildPayload(cart domain.Cart) domain.OrderPayload {
	email := strings.TrimSpace(c.contact.Email)
	if email == "" {
		email = fmt.Sprintf("guest-%d@example.com", c.now().UnixMilli())
	}

	payload := domain.OrderPayload{
		Email:          email,
		FullName:       c.contact.Name,
		Phone:          c.contact.Phone,
		DeliveryMethod: c.delivery.Method,
		PaymentMethod:  c.payment,
		Items:          orderLines(cart),
		TotalAmount:    c.orderTotal(cart),
	}
	if c.delivery.Method == domain.DeliveryCourier {
		address := c.delivery.ComposedAddress()
		payload.DeliveryAddress = &address
	}
	return payload
}

// fallbackOrderNumber is used when the order API accepts an order without
// returning its id.
func (c *Checkout) fallbackOrderNumber() string {
	return fmt.Sprintf("UR-%06d", c.now().UnixMilli()%1_000_000)
}
