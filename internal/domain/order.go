package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order status constants. Payment confirmation is a terminal user-visible
// acknowledgement, not a payment-gateway integration.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Payment method identifiers offered at checkout.
const (
	PaymentWechat = "wechat"
	PaymentAlipay = "alipay"
	PaymentCard   = "card"
)

// Address is the shipping address attached to an order.
type Address struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Province    string `json:"province"`
	City        string `json:"city"`
	District    string `json:"district"`
	AddressLine string `json:"address_line"`
}

// Order is the snapshot produced when a checkout is submitted: the purchased
// line items, the final quote breakdown, and the chosen fulfillment details.
type Order struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Status         string         `json:"status"`
	Items          []LineItem     `json:"items"`
	Quote          Quote          `json:"quote"`
	DeliveryOption DeliveryOption `json:"delivery_option"`
	PaymentMethod  string         `json:"payment_method"`
	CouponCode     string         `json:"coupon_code,omitempty"`
	Address        *Address       `json:"address,omitempty"`
	Remark         string         `json:"remark,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewOrder builds a pending order from a priced item set.
func NewOrder(userID string, items []LineItem, quote Quote, delivery DeliveryOption, paymentMethod string) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		Status:         OrderStatusPending,
		Items:          items,
		Quote:          quote,
		DeliveryOption: delivery,
		PaymentMethod:  paymentMethod,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MarkPaid transitions the order to its terminal paid state.
func (o *Order) MarkPaid() {
	o.Status = OrderStatusPaid
	o.UpdatedAt = time.Now().UTC()
}

// ItemCount returns the total number of units in the order.
func (o *Order) ItemCount() int {
	var count int
	for i := range o.Items {
		count += o.Items[i].Quantity
	}
	return count
}

// ValidPaymentMethod checks whether the given payment method is offered.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentWechat, PaymentAlipay, PaymentCard:
		return true
	}
	return false
}
