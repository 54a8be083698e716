package fulfillment

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
)

// platformTimeLayout is the fixed timestamp format the platform expects.
// Timestamps are rendered from local wall-clock components with no timezone
// conversion.
const platformTimeLayout = "2006-01-02 15:04:05"

// expressShippingMethod is the platform's code for the fast shipping option
const expressShippingMethod = 1

// Payment modes on the wire
const (
	paymentModeCOD     = 1
	paymentModePrepaid = 2
)

// defaultWeightGrams is used when no size can be parsed from a product's text
var defaultWeightGrams = decimal.NewFromInt(250)

// FormatTimestamp renders a timestamp in the platform's fixed format
func FormatTimestamp(t time.Time) string {
	return t.Format(platformTimeLayout)
}

// ExpectedDelivery computes the promised delivery instant: order date plus the
// lead time for the shipping method. Method 1 is the express option; every
// other code gets the standard lead time.
func ExpectedDelivery(orderDate time.Time, shippingMethod int, cfg *Config) time.Time {
	days := cfg.StandardLeadDays
	if shippingMethod == expressShippingMethod {
		days = cfg.ExpressLeadDays
	}
	return orderDate.AddDate(0, 0, days)
}

// PaymentMode derives the wire payment mode from the order's payment status.
// Only a COMPLETED payment maps to prepaid; every other status, including a
// still-pending one, is treated as cash-on-delivery. This is an explicit
// business rule, not a default.
func PaymentMode(status order.PaymentStatus) int {
	if status == order.PaymentStatusCompleted {
		return paymentModePrepaid
	}
	return paymentModeCOD
}

// MapOrder translates an order into the platform's wire payload. Pure apart
// from the synthetic item-identifier fallback, which stamps the current unix
// time into generated IDs.
func MapOrder(ord *order.Order, skus fulfillmentdomain.SKUResolver, cfg *Config) OrderPayload {
	method := ord.ShippingMethod
	if method == 0 {
		method = cfg.DefaultShippingMethod
	}

	payload := OrderPayload{
		OrderNumber:          ord.OrderNumber,
		MarketplaceID:        cfg.MarketplaceID,
		OrderDate:            FormatTimestamp(ord.CreatedAt),
		ExpectedDelivery:     FormatTimestamp(ExpectedDelivery(ord.CreatedAt, method, cfg)),
		ShippingMethod:       method,
		CarrierID:            cfg.CarrierID,
		PaymentMode:          PaymentMode(ord.PaymentStatus),
		PaymentTransactionID: ord.PlatformOrderID,
		ShippingCost:         ord.ShippingCost.StringFixed(2),
		Discount:             ord.DiscountAmount.StringFixed(2),
		Items:                mapOrderItems(ord.Items, skus),
		Customers: []CustomerPayload{
			{
				Billing:  mapAddress(ord.Billing(), ord),
				Shipping: mapAddress(ord.ShippingAddress, ord),
			},
		},
	}
	return payload
}

// mapOrderItems maps each line item to its wire shape. SKUs resolve through
// the snapshot product reference; an unresolvable reference yields an empty
// SKU, never an error.
func mapOrderItems(items []order.OrderItem, skus fulfillmentdomain.SKUResolver) []OrderItemPayload {
	out := make([]OrderItemPayload, 0, len(items))
	for i, item := range items {
		itemID := item.ID.String()
		if item.ID == uuid.Nil {
			itemID = fmt.Sprintf("item_%d_%d", i, time.Now().Unix())
		}
		out = append(out, OrderItemPayload{
			ItemID:    itemID,
			SKU:       skus.Resolve(item.ProductID),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Discount:  "0.00",
		})
	}
	return out
}

// mapAddress maps a domain address to the wire shape. Line2 is omitted rather
// than sent empty, and guest orders fall back to the order-captured name and
// email when the address carries none.
func mapAddress(a order.Address, ord *order.Order) AddressPayload {
	name := a.Name
	if name == "" {
		name = ord.CustomerName
	}
	email := a.Email
	if email == "" {
		email = ord.CustomerEmail
	}
	return AddressPayload{
		Name:       name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		Email:      email,
	}
}

// MapOrderUpdate translates a partial update into the wire shape
func MapOrderUpdate(update fulfillmentdomain.OrderUpdate) OrderUpdatePayload {
	payload := OrderUpdatePayload{}
	if update.Status != nil {
		payload.Status = update.Status.String()
	}
	if update.TrackingNumber != nil {
		payload.TrackingNumber = *update.TrackingNumber
	}
	if update.Notes != nil {
		payload.Notes = *update.Notes
	}
	return payload
}

// ---------------------------------------------------------------------------
// Product Mapping
// ---------------------------------------------------------------------------

// sizePattern matches "<number><unit>" with unit in ml/g/gm/oz, e.g. "50ml"
// or "1.7 oz", anywhere in a product's marketing text.
var sizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ml|gm|g|oz)\b`)

// ParseSize scans the given texts in order for a size token and returns the
// normalized size string and the derived weight in grams. When nothing
// matches, ok is false and the weight defaults to 250g.
func ParseSize(texts ...string) (size string, weightGrams decimal.Decimal, ok bool) {
	for _, text := range texts {
		m := sizePattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := decimal.NewFromString(m[1])
		if err != nil {
			continue
		}
		unit := strings.ToLower(m[2])
		switch unit {
		case "ml", "g", "gm":
			weightGrams = value
		case "oz":
			weightGrams = value.Mul(decimal.NewFromInt(30))
		}
		return m[1] + unit, weightGrams, true
	}
	return "", defaultWeightGrams, false
}

// MapProduct translates a catalog product into the platform's wire payload
func MapProduct(p *catalog.Product, cfg *Config) ProductPayload {
	size, weight, _ := ParseSize(p.SizeText, p.Tagline, p.Name, p.Description)

	return ProductPayload{
		Brand:       cfg.Brand,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Cost:        p.Price.StringFixed(2),
		Description: p.Description,
		Length:      "10",
		Width:       "10",
		Height:      "10",
		WeightGrams: weight.String(),
		TaxRate:     cfg.TaxRate,
		TaxRuleName: cfg.TaxRuleName,
		Size:        size,
		ImageURL:    p.ImageURL,
	}
}
