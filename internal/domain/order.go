package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is a line snapshot sent to the order API.
type OrderLine struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type OrderPayload struct {
	Email           string          `json:"email"`
	FullName        string          `json:"fullName"`
	Phone           string          `json:"phone"`
	DeliveryMethod  DeliveryMethod  `json:"deliveryMethod"`
	DeliveryAddress *string         `json:"deliveryAddress,omitempty"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Items           []OrderLine     `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

type SubmitResult struct {
	Success         bool   `json:"success"`
	OrderID         string `json:"orderId,omitempty"`
	PaymentURL      string `json:"paymentUrl,omitempty"`
	SberbankOrderID string `json:"sberbankOrderId,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
}

// OrderConfirmation freezes the cart at placement time; the live cart is
// cleared right after.
type OrderConfirmation struct {
	OrderNumber string          `json:"orderNumber"`
	PaymentURL  string          `json:"paymentUrl,omitempty"`
	Items       []CartItem      `json:"items"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	ItemsCount  int             `json:"itemsCount"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// CheckoutState is a read-only view of a checkout session.
type CheckoutState struct {
	Step           CheckoutStep       `json:"step"`
	CompletedSteps []CheckoutStep     `json:"completedSteps"`
	Contact        ContactInfo        `json:"contact"`
	Delivery       DeliveryInfo       `json:"delivery"`
	Payment        PaymentMethod      `json:"payment"`
	Submitting     bool               `json:"submitting"`
	Total          decimal.Decimal    `json:"total"`
	ItemsCount     int                `json:"itemsCount"`
	AddOnSurcharge decimal.Decimal    `json:"addOnSurcharge"`
	CourierFee     decimal.Decimal    `json:"courierFee"`
	Confirmation   *OrderConfirmation `json:"confirmation,omitempty"`
}

// OrderExport is the document handed to the export collaborator.
type OrderExport struct {
	OrderNumber   string          `json:"orderNumber"`
	Items         []CartItem      `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	ItemsCount    int             `json:"itemsCount"`
	ContactData   ContactInfo     `json:"contactData"`
	DeliveryType  DeliveryMethod  `json:"deliveryType"`
	DeliveryData  DeliveryInfo    `json:"deliveryData"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
}
