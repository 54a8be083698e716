package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
)

// FulfillmentSyncer is the slice of the fulfillment service the transition
// handler needs
type FulfillmentSyncer interface {
	SyncOrder(ctx context.Context, orderID uuid.UUID) (*fulfillmentdomain.SyncResult, error)
	UpdateOrder(ctx context.Context, orderNumber string, update fulfillmentdomain.OrderUpdate) (*fulfillmentdomain.SyncResult, error)
}

// OrderTransitionHandler reacts to a persisted order status change. The
// notification leg and the fulfillment leg are independent: neither waits on
// nor observes the other, and both are best-effort from the caller's view.
type OrderTransitionHandler struct {
	dispatcher *Dispatcher
	syncer     FulfillmentSyncer
	logger     *zap.Logger
}

// NewOrderTransitionHandler creates a transition handler. syncer may be nil
// when no fulfillment platform is configured.
func NewOrderTransitionHandler(dispatcher *Dispatcher, syncer FulfillmentSyncer, logger *zap.Logger) *OrderTransitionHandler {
	return &OrderTransitionHandler{
		dispatcher: dispatcher,
		syncer:     syncer,
		logger:     logger,
	}
}

// HandleTransition runs the side effects of a status change. The order is
// expected to already carry newStatus.
func (h *OrderTransitionHandler) HandleTransition(ctx context.Context, ord *order.Order, oldStatus, newStatus order.Status) {
	if typ := order.NotificationTypeForTransition(oldStatus, newStatus); typ != order.NotificationNone {
		h.dispatcher.Dispatch(typ, ord, "")
	}

	if h.syncer == nil {
		return
	}

	switch newStatus {
	case order.StatusConfirmed:
		result, err := h.syncer.SyncOrder(ctx, ord.ID)
		if err != nil {
			h.logger.Error("fulfillment sync failed",
				zap.String("order_number", ord.OrderNumber), zap.Error(err))
			return
		}
		if !result.Success {
			h.logger.Warn("fulfillment platform rejected order",
				zap.String("order_number", ord.OrderNumber),
				zap.String("platform_error", result.Error))
		}
	case order.StatusShipped:
		status := newStatus
		update := fulfillmentdomain.OrderUpdate{Status: &status}
		if ord.TrackingNumber != "" {
			tracking := ord.TrackingNumber
			update.TrackingNumber = &tracking
		}
		result, err := h.syncer.UpdateOrder(ctx, ord.OrderNumber, update)
		if err != nil {
			h.logger.Error("fulfillment update failed",
				zap.String("order_number", ord.OrderNumber), zap.Error(err))
			return
		}
		if !result.Success {
			h.logger.Warn("fulfillment platform rejected update",
				zap.String("order_number", ord.OrderNumber),
				zap.String("platform_error", result.Error))
		}
	}
}
