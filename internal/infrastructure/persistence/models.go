package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// addressColumns is the flattened address column group shared by the
// shipping_ and billing_ prefixes on the orders table
type addressColumns struct {
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

func (a addressColumns) toDomain() order.Address {
	return order.Address{
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		Email:      a.Email,
	}
}

func (a addressColumns) empty() bool {
	return a == addressColumns{}
}

// orderModel maps the storefront's orders table
type orderModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber   string    `gorm:"uniqueIndex"`
	Status        string
	PaymentStatus string

	Subtotal       decimal.Decimal `gorm:"type:numeric"`
	ShippingCost   decimal.Decimal `gorm:"type:numeric"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric"`

	CustomerName    string
	CustomerEmail   string
	PlatformOrderID string
	ShippingMethod  int
	TrackingNumber  string
	Notes           string

	ShippingAddress addressColumns `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  addressColumns `gorm:"embedded;embeddedPrefix:billing_"`

	Items []orderItemModel `gorm:"foreignKey:OrderID"`

	CreatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
}

func (orderModel) TableName() string { return "orders" }

// orderItemModel maps the storefront's order_items table. ProductID is a
// snapshot reference: the product may since have been deleted.
type orderItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
	Quantity  int
	LineTotal decimal.Decimal `gorm:"type:numeric"`
}

func (orderItemModel) TableName() string { return "order_items" }

func (m *orderModel) toDomain() *order.Order {
	items := make([]order.OrderItem, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, order.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}

	ord := &order.Order{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		Status:          order.Status(m.Status),
		PaymentStatus:   order.PaymentStatus(m.PaymentStatus),
		Subtotal:        m.Subtotal,
		ShippingCost:    m.ShippingCost,
		TaxAmount:       m.TaxAmount,
		DiscountAmount:  m.DiscountAmount,
		TotalAmount:     m.TotalAmount,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail,
		PlatformOrderID: m.PlatformOrderID,
		ShippingMethod:  m.ShippingMethod,
		TrackingNumber:  m.TrackingNumber,
		Notes:           m.Notes,
		Items:           items,
		ShippingAddress: m.ShippingAddress.toDomain(),
		CreatedAt:       m.CreatedAt,
		ShippedAt:       m.ShippedAt,
		DeliveredAt:     m.DeliveredAt,
	}
	if !m.BillingAddress.empty() {
		billing := m.BillingAddress.toDomain()
		ord.BillingAddress = &billing
	}
	return ord
}

// productModel maps the storefront's products table
type productModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SKU         string    `gorm:"column:sku;index"`
	Name        string
	Price       decimal.Decimal `gorm:"type:numeric"`
	Description string
	Tagline     string
	SizeText    string
	Category    string
	ImageURL    string
}

func (productModel) TableName() string { return "products" }

func (m *productModel) toDomain() *catalog.Product {
	return &catalog.Product{
		ID:          m.ID,
		SKU:         m.SKU,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Tagline:     m.Tagline,
		SizeText:    m.SizeText,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
	}
}
