package models

import "time"

// PaymentMethod is how the customer pays on delivery.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentBit  PaymentMethod = "bit"
)

// OrderStatus is the lifecycle state of an order in the external backend.
type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusContacted OrderStatus = "contacted"
	StatusShipped   OrderStatus = "shipped"
	StatusCompleted OrderStatus = "completed"
	StatusCanceled  OrderStatus = "canceled"
)

// OrderItem represents a single line of a placed order.
type OrderItem struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	ProductNameAr string  `json:"productNameAr"`
	Size          string  `json:"size"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"` // Price at the time of order
	Image         string  `json:"image,omitempty"`
}

// CustomerInfo identifies who placed the order.
type CustomerInfo struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

// ShippingAddress is where the order is delivered.
type ShippingAddress struct {
	City      string `json:"city"`
	Street    string `json:"street"`
	Building  string `json:"building"`
	Apartment string `json:"apartment,omitempty"`
}

// Order represents a customer order as owned by the order backend.
type Order struct {
	ID              string          `json:"id"`
	Ref             string          `json:"ref"`
	Items           []OrderItem     `json:"items"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
	Status          OrderStatus     `json:"status"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderLine is one {variantId, quantity} pair of an order request.
type OrderLine struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// CreateOrderRequest is the body sent to POST /orders.
type CreateOrderRequest struct {
	Items           []OrderLine     `json:"items"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Notes           string          `json:"notes,omitempty"`
}

// CheckoutForm is the customer input collected at checkout.
type CheckoutForm struct {
	FullName      string        `json:"fullName" validate:"required,min=2,max=100"`
	Phone         string        `json:"phone" validate:"required,min=8,max=20"`
	Email         string        `json:"email" validate:"omitempty,email"`
	City          string        `json:"city" validate:"required,min=2,max=100"`
	Street        string        `json:"street" validate:"required,min=2,max=200"`
	Building      string        `json:"building" validate:"required,min=1,max=100"`
	Apartment     string        `json:"apartment" validate:"max=100"`
	Notes         string        `json:"notes" validate:"max=500"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash bit"`
}
