package fulfillment

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		APIKey:        "test_api_key",
		BaseURL:       "https://api.example.com/v1",
		MarketplaceID: "mk_42",
		StaticToken:   "static_token",
		Brand:         "Velvet Fern",
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	assert.Equal(t, "2025-03-14 09:26:53", FormatTimestamp(ts))
}

func TestExpectedDelivery(t *testing.T) {
	cfg := testConfig(t)
	orderDate := time.Date(2025, 3, 14, 10, 0, 0, 0, time.Local)

	t.Run("express method", func(t *testing.T) {
		got := ExpectedDelivery(orderDate, 1, cfg)
		assert.Equal(t, orderDate.AddDate(0, 0, cfg.ExpressLeadDays), got)
	})

	t.Run("standard method", func(t *testing.T) {
		for _, method := range []int{2, 3, 7} {
			got := ExpectedDelivery(orderDate, method, cfg)
			assert.Equal(t, orderDate.AddDate(0, 0, cfg.StandardLeadDays), got)
		}
	})
}

func TestPaymentMode(t *testing.T) {
	tests := []struct {
		status order.PaymentStatus
		want   int
	}{
		{order.PaymentStatusCompleted, 2},
		{order.PaymentStatusPending, 1},
		{order.PaymentStatusFailed, 1},
		{order.PaymentStatusRefunded, 1},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentMode(tt.status))
		})
	}
}

func testOrder() *order.Order {
	productID := uuid.New()
	return &order.Order{
		ID:          uuid.New(),
		OrderNumber: "SO-2025-0107",
		Status:      order.StatusConfirmed,

		PaymentStatus:  order.PaymentStatusCompleted,
		Subtotal:       decimal.RequireFromString("64.00"),
		ShippingCost:   decimal.RequireFromString("4.95"),
		TaxAmount:      decimal.RequireFromString("12.80"),
		DiscountAmount: decimal.RequireFromString("6.40"),
		TotalAmount:    decimal.RequireFromString("75.35"),
		Items: []order.OrderItem{
			{
				ID:        uuid.New(),
				ProductID: productID,
				Name:      "Hydrating Day Cream",
				UnitPrice: decimal.RequireFromString("32.00"),
				Quantity:  2,
				LineTotal: decimal.RequireFromString("64.00"),
			},
		},
		ShippingAddress: order.Address{
			Name:       "Ada Voss",
			Line1:      "12 Fern Way",
			City:       "Leeds",
			State:      "West Yorkshire",
			PostalCode: "LS1 4DY",
			Country:    "GB",
			Email:      "ada@example.com",
		},
		ShippingMethod: 1,
		CreatedAt:      time.Date(2025, 1, 7, 14, 30, 0, 0, time.Local),
	}
}

func TestMapOrder(t *testing.T) {
	cfg := testConfig(t)

	t.Run("header and totals", func(t *testing.T) {
		ord := testOrder()
		skus := fulfillmentdomain.SKUResolver{ord.Items[0].ProductID: "VF-CRM-050"}

		payload := MapOrder(ord, skus, cfg)

		assert.Equal(t, "SO-2025-0107", payload.OrderNumber)
		assert.Equal(t, "mk_42", payload.MarketplaceID)
		assert.Equal(t, "2025-01-07 14:30:00", payload.OrderDate)
		assert.Equal(t, "2025-01-09 14:30:00", payload.ExpectedDelivery)
		assert.Equal(t, 2, payload.PaymentMode)
		assert.Equal(t, "4.95", payload.ShippingCost)
		assert.Equal(t, "6.40", payload.Discount)
	})

	t.Run("sku resolution", func(t *testing.T) {
		ord := testOrder()
		skus := fulfillmentdomain.SKUResolver{ord.Items[0].ProductID: "VF-CRM-050"}

		payload := MapOrder(ord, skus, cfg)

		require.Len(t, payload.Items, 1)
		assert.Equal(t, "VF-CRM-050", payload.Items[0].SKU)
		assert.Equal(t, "0.00", payload.Items[0].Discount)
	})

	t.Run("unresolvable snapshot yields empty sku", func(t *testing.T) {
		ord := testOrder()

		payload := MapOrder(ord, fulfillmentdomain.SKUResolver{}, cfg)

		require.Len(t, payload.Items, 1)
		assert.Equal(t, "", payload.Items[0].SKU)
	})

	t.Run("item id fallback", func(t *testing.T) {
		ord := testOrder()
		ord.Items[0].ID = uuid.Nil

		payload := MapOrder(ord, fulfillmentdomain.SKUResolver{}, cfg)

		assert.True(t, strings.HasPrefix(payload.Items[0].ItemID, "item_0_"))
	})

	t.Run("billing defaults to shipping", func(t *testing.T) {
		ord := testOrder()

		payload := MapOrder(ord, fulfillmentdomain.SKUResolver{}, cfg)

		require.Len(t, payload.Customers, 1)
		assert.Equal(t, payload.Customers[0].Shipping, payload.Customers[0].Billing)
		assert.Equal(t, "Ada Voss", payload.Customers[0].Billing.Name)
	})

	t.Run("missing address line 2 omitted from wire", func(t *testing.T) {
		ord := testOrder()

		payload := MapOrder(ord, fulfillmentdomain.SKUResolver{}, cfg)
		raw, err := json.Marshal(payload.Customers[0].Shipping)
		require.NoError(t, err)

		assert.NotContains(t, string(raw), "address_line_2")
		assert.NotContains(t, string(raw), "latitude")
	})

	t.Run("guest order falls back to captured identity", func(t *testing.T) {
		ord := testOrder()
		ord.ShippingAddress.Name = ""
		ord.ShippingAddress.Email = ""
		ord.CustomerName = "Guest Buyer"
		ord.CustomerEmail = "guest@example.com"

		payload := MapOrder(ord, fulfillmentdomain.SKUResolver{}, cfg)

		assert.Equal(t, "Guest Buyer", payload.Customers[0].Shipping.Name)
		assert.Equal(t, "guest@example.com", payload.Customers[0].Shipping.Email)
	})

	t.Run("payment reference carried when present", func(t *testing.T) {
		ord := testOrder()
		ord.PlatformOrderID = "txn_981"

		payload := MapOrder(ord, fulfillmentdomain.SKUResolver{}, cfg)

		assert.Equal(t, "txn_981", payload.PaymentTransactionID)
	})
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantSize   string
		wantWeight string
		wantOK     bool
	}{
		{"millilitres", "Soothing toner 200ml", "200ml", "200", true},
		{"grams", "Clay mask 75g jar", "75g", "75", true},
		{"gm spelling", "Body butter 120 gm", "120gm", "120", true},
		{"ounces", "Serum 1.7oz", "1.7oz", "51", true},
		{"no size", "Overnight repair balm", "", "250", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, weight, ok := ParseSize(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSize, size)
			assert.True(t, weight.Equal(decimal.RequireFromString(tt.wantWeight)),
				"weight = %s, want %s", weight, tt.wantWeight)
		})
	}

	t.Run("scans texts in order", func(t *testing.T) {
		size, _, ok := ParseSize("", "Glow drops 30ml", "50ml elsewhere")
		assert.True(t, ok)
		assert.Equal(t, "30ml", size)
	})
}

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:       uuid.New(),
		SKU:      "VF-TNR-200",
		Name:     "Soothing Toner",
		Price:    decimal.RequireFromString("18.50"),
		Tagline:  "Calm in a bottle, 200ml",
		Category: "Toners",
		ImageURL: "https://cdn.example.com/toner.jpg",
	}
}

func TestMapProduct(t *testing.T) {
	cfg := testConfig(t)
	payload := MapProduct(testProduct(), cfg)

	assert.Equal(t, "Velvet Fern", payload.Brand)
	assert.Equal(t, "VF-TNR-200", payload.SKU)
	assert.Equal(t, "18.50", payload.Cost)
	assert.Equal(t, "200ml", payload.Size)
	assert.Equal(t, "200", payload.WeightGrams)
	assert.Equal(t, "20", payload.TaxRate)
	assert.Equal(t, "Standard", payload.TaxRuleName)
}
