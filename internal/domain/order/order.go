package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound indicates the order does not exist in the store
	ErrOrderNotFound = errors.New("order: order not found")
	// ErrOrderNumberRequired indicates an operation was keyed by an empty order number
	ErrOrderNumberRequired = errors.New("order: order number is required")
)

// Address is a structured postal address captured on the order.
// Line2 is optional and stays empty when the customer did not provide one.
type Address struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	Email      string
}

// OrderItem is a line item of an order. ProductID is a snapshot reference to
// the product at time of purchase; the live catalog may have changed since,
// so the snapshot reference is authoritative when resolving a SKU.
type OrderItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// Order is the order aggregate as read from the order store.
// TotalAmount == Subtotal + ShippingCost + TaxAmount - DiscountAmount is
// assumed true of the input; this core does not enforce it.
type Order struct {
	ID          uuid.UUID
	OrderNumber string

	Status        Status
	PaymentStatus PaymentStatus

	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal

	Items []OrderItem

	ShippingAddress Address
	// BillingAddress is nil when the customer billed to the shipping address
	BillingAddress *Address

	// CustomerName and CustomerEmail are captured on the order itself and are
	// the fallback identity for guest checkouts
	CustomerName  string
	CustomerEmail string

	// PlatformOrderID is the payment/platform transaction reference, set once
	// the order has been pushed to an external system
	PlatformOrderID string

	// ShippingMethod is the numeric shipping method code chosen at checkout
	ShippingMethod int

	TrackingNumber string
	Notes          string

	CreatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

// Billing returns the billing address, falling back to the shipping address
// when no separate billing address was captured.
func (o *Order) Billing() Address {
	if o.BillingAddress != nil {
		return *o.BillingAddress
	}
	return o.ShippingAddress
}

// RecipientEmail returns the address notifications should go to: the shipping
// address email when present, otherwise the order-captured customer email.
func (o *Order) RecipientEmail() string {
	if o.ShippingAddress.Email != "" {
		return o.ShippingAddress.Email
	}
	return o.CustomerEmail
}

// Repository provides read access to orders. This core never writes orders;
// persistence of status changes belongs to the order-management layer.
type Repository interface {
	// FindByID loads an order with its items and addresses
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByNumber loads an order by its human-readable order number
	FindByNumber(ctx context.Context, number string) (*Order, error)
}
