package order

import (
	"errors"

	"github.com/wichananm65/storefront/internal/cart"
)

var (
	ErrNotFound      = errors.New("order not found")
	ErrEmptyOrder    = errors.New("order has no items")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrMissingID     = errors.New("order id is required")
	// ErrNoOrderID means the backend accepted the request without returning the created order.
	ErrNoOrderID = errors.New("backend did not return an order id")
)

// ClientInfo is the delivery contact captured on the payment page.
type ClientInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentCreditCard     PaymentMethod = "credit_card"
	PaymentPayPal         PaymentMethod = "paypal"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentCreditCard, PaymentPayPal:
		return true
	}
	return false
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is an order status the admin console may set.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Submission is the body sent to the backend when placing an order.
type Submission struct {
	ClientInfo    ClientInfo    `json:"clientInfo"`
	CartItems     []cart.Item   `json:"cartItems"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        string        `json:"status"`
}

// Order is the backend's order record.
type Order struct {
	ID            string        `json:"_id"`
	ClientInfo    ClientInfo    `json:"clientInfo"`
	CartItems     []cart.Item   `json:"cartItems"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        string        `json:"status"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	UpdatedAt     string        `json:"updatedAt,omitempty"`
}
