package fulfillment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
)

// FulfillmentService pushes orders to the logistics platform and queries
// their remote state
type FulfillmentService struct {
	platform fulfillmentdomain.Platform
	orders   order.Repository
	products catalog.Repository
	logger   *zap.Logger
}

// NewFulfillmentService creates a fulfillment service
func NewFulfillmentService(
	platform fulfillmentdomain.Platform,
	orders order.Repository,
	products catalog.Repository,
	logger *zap.Logger,
) *FulfillmentService {
	return &FulfillmentService{
		platform: platform,
		orders:   orders,
		products: products,
		logger:   logger,
	}
}

// SyncOrder loads an order, resolves its item SKUs against the live catalog
// and pushes it to the platform. Items whose product no longer exists are
// sent with an empty SKU rather than failing the order.
func (s *FulfillmentService) SyncOrder(ctx context.Context, orderID uuid.UUID) (*fulfillmentdomain.SyncResult, error) {
	ord, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	skus := s.resolveSKUs(ctx, ord)

	result, err := s.platform.CreateOrder(ctx, ord, skus)
	if err != nil {
		return nil, err
	}
	if result.Success {
		s.logger.Info("order pushed to fulfillment platform",
			zap.String("order_number", ord.OrderNumber))
	} else {
		s.logger.Warn("fulfillment platform rejected order",
			zap.String("order_number", ord.OrderNumber),
			zap.String("platform_error", result.Error))
	}
	return result, nil
}

// resolveSKUs maps each item's snapshot product reference to the catalog's
// current SKU. A missing product is logged and left unresolved.
func (s *FulfillmentService) resolveSKUs(ctx context.Context, ord *order.Order) fulfillmentdomain.SKUResolver {
	skus := make(fulfillmentdomain.SKUResolver, len(ord.Items))
	for _, item := range ord.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, catalog.ErrProductNotFound) {
				s.logger.Warn("catalog lookup failed during sku resolution",
					zap.String("order_number", ord.OrderNumber),
					zap.String("product_id", item.ProductID.String()),
					zap.Error(err))
			}
			continue
		}
		if product.SKU != "" {
			skus[item.ProductID] = product.SKU
		}
	}
	return skus
}

// OrderStatus fetches the platform's view of an order by order number
func (s *FulfillmentService) OrderStatus(ctx context.Context, orderNumber string) (*fulfillmentdomain.SyncResult, error) {
	return s.platform.OrderStatus(ctx, orderNumber)
}

// UpdateOrder patches order state on the platform, keyed by order number
func (s *FulfillmentService) UpdateOrder(ctx context.Context, orderNumber string, update fulfillmentdomain.OrderUpdate) (*fulfillmentdomain.SyncResult, error) {
	return s.platform.UpdateOrder(ctx, orderNumber, update)
}
