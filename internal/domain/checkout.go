package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type ContactInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Comment string `json:"comment"`
}

type DeliveryMethod string

const (
	DeliveryPickup    DeliveryMethod = "pickup"
	DeliveryCourier   DeliveryMethod = "delivery"
	DeliveryTransport DeliveryMethod = "transport"
)

func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryPickup, DeliveryCourier, DeliveryTransport:
		return true
	}
	return false
}

type AddOn string

const (
	AddOnLargeItem         AddOn = "large_item"
	AddOnLiftToFloor       AddOn = "lift_to_floor"
	AddOnEveningDelivery   AddOn = "evening_delivery"
	AddOnSMSNotification   AddOn = "sms_notification"
	AddOnFurnitureAssembly AddOn = "furniture_assembly"
)

var addOnSurcharges = map[AddOn]int64{
	AddOnLargeItem:         500,
	AddOnLiftToFloor:       200, // per floor
	AddOnEveningDelivery:   300,
	AddOnSMSNotification:   0,
	AddOnFurnitureAssembly: 1000,
}

func (a AddOn) IsValid() bool {
	_, ok := addOnSurcharges[a]
	return ok
}

type DeliveryInfo struct {
	Method    DeliveryMethod `json:"method"`
	Address   string         `json:"address"`
	Entrance  string         `json:"entrance"`
	Floor     string         `json:"floor"`
	Apartment string         `json:"apartment"`
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	AddOns    []AddOn        `json:"addOns,omitempty"`
}

func (d DeliveryInfo) HasAddOn(a AddOn) bool {
	for _, selected := range d.AddOns {
		if selected == a {
			return true
		}
	}
	return false
}

// ComposedAddress is the single-line address sent with courier orders.
func (d DeliveryInfo) ComposedAddress() string {
	return d.Address + ", entrance " + d.Entrance + ", floor " + d.Floor + ", apt. " + d.Apartment
}

// AddOnSurcharge sums the surcharges of the selected add-ons. Add-ons only
// apply to courier delivery. Floor lifting is charged per floor, at least one.
func (d DeliveryInfo) AddOnSurcharge() decimal.Decimal {
	if d.Method != DeliveryCourier {
		return decimal.Zero
	}
	total := decimal.Zero
	seen := make(map[AddOn]bool, len(d.AddOns))
	for _, a := range d.AddOns {
		price, ok := addOnSurcharges[a]
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		if a == AddOnLiftToFloor {
			price *= int64(floorCount(d.Floor))
		}
		total = total.Add(decimal.NewFromInt(price))
	}
	return total
}

func floorCount(floor string) int {
	n, err := strconv.Atoi(strings.TrimSpace(floor))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentSberPay PaymentMethod = "sberpay"
	PaymentSBP     PaymentMethod = "sbp"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentSberPay, PaymentSBP:
		return true
	}
	return false
}

// IsOnline reports whether the order is paid on a payment page after placement.
func (p PaymentMethod) IsOnline() bool {
	return p == PaymentSberPay || p == PaymentSBP
}

var (
	courierFreeThreshold = decimal.NewFromInt(5000)
	courierFee           = decimal.NewFromInt(300)
)

// CourierFee is the advertised courier price for an order total: free from
// 5000, otherwise 300. It is shown to the customer and never charged here.
func CourierFee(total decimal.Decimal) decimal.Decimal {
	if total.GreaterThanOrEqual(courierFreeThreshold) {
		return decimal.Zero
	}
	return courierFee
}
