package order

// Status represents the lifecycle status of a storefront order
type Status string

const (
	// StatusPending indicates the order has been placed but not yet confirmed
	StatusPending Status = "PENDING"
	// StatusConfirmed indicates payment was accepted and the order is confirmed
	StatusConfirmed Status = "CONFIRMED"
	// StatusProcessing indicates the order is being prepared for shipment
	StatusProcessing Status = "PROCESSING"
	// StatusShipped indicates the order has left the warehouse
	StatusShipped Status = "SHIPPED"
	// StatusDelivered indicates the order reached the customer
	StatusDelivered Status = "DELIVERED"
	// StatusCancelled indicates the order was cancelled
	StatusCancelled Status = "CANCELLED"
	// StatusRefunded indicates the order was refunded
	StatusRefunded Status = "REFUNDED"
)

// IsValid returns true if the status is one of the known lifecycle states
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	// PaymentStatusPending indicates payment has not completed yet
	PaymentStatusPending PaymentStatus = "PENDING"
	// PaymentStatusCompleted indicates payment was captured
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	// PaymentStatusFailed indicates payment failed
	PaymentStatusFailed PaymentStatus = "FAILED"
	// PaymentStatusRefunded indicates payment was returned to the customer
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// IsValid returns true if the payment status is known
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}
