package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
)

// fakeSyncer records the fulfillment calls the handler makes
type fakeSyncer struct {
	syncedOrders   []uuid.UUID
	updatedNumbers []string
	updates        []fulfillmentdomain.OrderUpdate
	syncErr        error
}

func (f *fakeSyncer) SyncOrder(ctx context.Context, orderID uuid.UUID) (*fulfillmentdomain.SyncResult, error) {
	f.syncedOrders = append(f.syncedOrders, orderID)
	if f.syncErr != nil {
		return nil, f.syncErr
	}
	return &fulfillmentdomain.SyncResult{Success: true}, nil
}

func (f *fakeSyncer) UpdateOrder(ctx context.Context, orderNumber string, update fulfillmentdomain.OrderUpdate) (*fulfillmentdomain.SyncResult, error) {
	f.updatedNumbers = append(f.updatedNumbers, orderNumber)
	f.updates = append(f.updates, update)
	return &fulfillmentdomain.SyncResult{Success: true}, nil
}

func transitionFixture() (*OrderTransitionHandler, *fakeTransport, *fakeQueue, *fakeSyncer, *order.Order) {
	transport := &fakeTransport{}
	queue := &fakeQueue{}
	syncer := &fakeSyncer{}
	dispatcher, _ := testDispatcher(transport, queue)
	handler := NewOrderTransitionHandler(dispatcher, syncer, zap.NewNop())

	ord := notifiableOrder()
	ord.ID = uuid.New()
	return handler, transport, queue, syncer, ord
}

func TestHandleTransition(t *testing.T) {
	t.Run("confirmed triggers sync and confirmation mail", func(t *testing.T) {
		handler, _, queue, syncer, ord := transitionFixture()

		handler.HandleTransition(context.Background(), ord, order.StatusPending, order.StatusConfirmed)

		require.Len(t, queue.jobs, 1, "confirmation enqueued")
		assert.Equal(t, []uuid.UUID{ord.ID}, syncer.syncedOrders)
		assert.Empty(t, syncer.updatedNumbers)
	})

	t.Run("shipped triggers update with tracking", func(t *testing.T) {
		handler, _, queue, syncer, ord := transitionFixture()
		ord.TrackingNumber = "TRK-77"

		handler.HandleTransition(context.Background(), ord, order.StatusProcessing, order.StatusShipped)

		require.Len(t, queue.jobs, 1)
		require.Len(t, syncer.updates, 1)
		assert.Equal(t, []string{"SO-2025-0042"}, syncer.updatedNumbers)
		require.NotNil(t, syncer.updates[0].Status)
		assert.Equal(t, order.StatusShipped, *syncer.updates[0].Status)
		require.NotNil(t, syncer.updates[0].TrackingNumber)
		assert.Equal(t, "TRK-77", *syncer.updates[0].TrackingNumber)
	})

	t.Run("delivered only notifies", func(t *testing.T) {
		handler, _, queue, syncer, ord := transitionFixture()

		handler.HandleTransition(context.Background(), ord, order.StatusShipped, order.StatusDelivered)

		assert.Len(t, queue.jobs, 1)
		assert.Empty(t, syncer.syncedOrders)
		assert.Empty(t, syncer.updatedNumbers)
	})

	t.Run("no-op transition does nothing", func(t *testing.T) {
		handler, _, queue, syncer, ord := transitionFixture()

		handler.HandleTransition(context.Background(), ord, order.StatusShipped, order.StatusShipped)

		assert.Empty(t, queue.jobs)
		assert.Empty(t, syncer.syncedOrders)
	})

	t.Run("sync failure does not block notification", func(t *testing.T) {
		handler, _, queue, syncer, ord := transitionFixture()
		syncer.syncErr = fulfillmentdomain.ErrAuthFailed

		handler.HandleTransition(context.Background(), ord, order.StatusPending, order.StatusConfirmed)

		assert.Len(t, queue.jobs, 1, "notification leg is independent of the sync leg")
	})

	t.Run("nil syncer skips fulfillment leg", func(t *testing.T) {
		transport := &fakeTransport{}
		queue := &fakeQueue{}
		dispatcher, _ := testDispatcher(transport, queue)
		handler := NewOrderTransitionHandler(dispatcher, nil, zap.NewNop())

		handler.HandleTransition(context.Background(), notifiableOrder(), order.StatusPending, order.StatusConfirmed)
		assert.Len(t, queue.jobs, 1)
	})
}
