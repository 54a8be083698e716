package fulfillment

// ---------------------------------------------------------------------------
// Common API Types
// ---------------------------------------------------------------------------

// apiResponse is the envelope the platform wraps around every response
type apiResponse struct {
	// Success indicates the operation was accepted
	Success bool `json:"success"`
	// Message carries the platform's human-readable outcome
	Message string `json:"message,omitempty"`
}

// tokenRequest is the body for the token endpoint
type tokenRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	LocationKey string `json:"location_key"`
}

// tokenResponse is the token endpoint response. The platform is inconsistent
// about the field name, so both spellings are accepted.
type tokenResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// bearer returns whichever token field the platform populated
func (r *tokenResponse) bearer() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// ---------------------------------------------------------------------------
// Order Wire Schema
// ---------------------------------------------------------------------------

// OrderPayload is the wire shape the platform expects for order creation.
// Subtotal and tax are not separately transmitted; only shipping cost and the
// order-level discount travel alongside the items.
type OrderPayload struct {
	OrderNumber      string `json:"order_number"`
	MarketplaceID    string `json:"marketplace_id,omitempty"`
	OrderDate        string `json:"order_date"`
	ExpectedDelivery string `json:"expected_delivery_date"`
	ShippingMethod   int    `json:"shipping_method"`
	CarrierID        string `json:"carrier_id,omitempty"`

	// PaymentMode is 2 for prepaid, 1 for cash-on-delivery
	PaymentMode int `json:"payment_mode"`
	// PaymentTransactionID is the platform's own order/payment reference,
	// carried when the order has one
	PaymentTransactionID string `json:"payment_transaction_id,omitempty"`

	ShippingCost string `json:"shipping_cost"`
	Discount     string `json:"discount"`

	Items     []OrderItemPayload `json:"items"`
	Customers []CustomerPayload  `json:"customers"`
}

// OrderItemPayload is one order line on the wire. Per-item discounts are
// always zero; discounts aggregate at the order level only.
type OrderItemPayload struct {
	ItemID    string `json:"item_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Discount  string `json:"discount"`
}

// CustomerPayload groups the billing and shipping addresses of the buyer.
// The platform accepts a list but this core always sends exactly one entry.
type CustomerPayload struct {
	Billing  AddressPayload `json:"billing"`
	Shipping AddressPayload `json:"shipping"`
}

// AddressPayload is the wire address shape. Latitude/Longitude exist in the
// platform schema but are never populated by this core.
type AddressPayload struct {
	Name       string `json:"name"`
	Line1      string `json:"address_line_1"`
	Line2      string `json:"address_line_2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Latitude   string `json:"latitude,omitempty"`
	Longitude  string `json:"longitude,omitempty"`
}

// OrderUpdatePayload is the wire shape for partial order updates
type OrderUpdatePayload struct {
	Status         string `json:"status,omitempty"`
	TrackingNumber string `json:"tracking_number,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// ---------------------------------------------------------------------------
// Product Wire Schema
// ---------------------------------------------------------------------------

// ProductPayload is the wire shape for product create/update
type ProductPayload struct {
	Brand       string `json:"brand"`
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Cost        string `json:"cost"`
	Description string `json:"description,omitempty"`

	// Dimensions in centimetres; flat defaults for cosmetics-sized parcels
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
	// WeightGrams is heuristically derived from the size text
	WeightGrams string `json:"weight"`

	TaxRate     string `json:"tax_rate"`
	TaxRuleName string `json:"tax_rule_name"`

	Size     string `json:"size,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	EAN      string `json:"ean,omitempty"`
}
