package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	notificationdomain "github.com/storefront/backend/internal/domain/notification"
	"github.com/storefront/backend/internal/domain/order"
)

// fakeTransport records sends and fails a configurable number of times
type fakeTransport struct {
	failures int
	calls    int
	messages []notificationdomain.Message
}

func (f *fakeTransport) Send(ctx context.Context, msg notificationdomain.Message) (*notificationdomain.SendResult, error) {
	f.calls++
	f.messages = append(f.messages, msg)
	if f.calls <= f.failures {
		return nil, notificationdomain.ErrSendFailed
	}
	return &notificationdomain.SendResult{ID: "msg_1"}, nil
}

// fakeQueue captures enqueued jobs for manual execution
type fakeQueue struct {
	jobs []notificationdomain.Job
	full bool
}

func (f *fakeQueue) Enqueue(job notificationdomain.Job) bool {
	if f.full {
		return false
	}
	f.jobs = append(f.jobs, job)
	return true
}

func testDispatcher(transport notificationdomain.Transport, queue notificationdomain.Queue) (*Dispatcher, *[]time.Duration) {
	d := NewDispatcher(transport, queue, Config{
		From:   "orders@velvetfern.example",
		AppURL: "https://velvetfern.example",
	}, zap.NewNop())
	sleeps := &[]time.Duration{}
	d.sleep = func(ctx context.Context, dur time.Duration) error {
		*sleeps = append(*sleeps, dur)
		return nil
	}
	return d, sleeps
}

func notifiableOrder() *order.Order {
	return &order.Order{
		OrderNumber: "SO-2025-0042",
		ShippingAddress: order.Address{
			Name:  "Ada Voss",
			Email: "ada@example.com",
		},
	}
}

func TestDispatchSync(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		transport := &fakeTransport{}
		d, sleeps := testDispatcher(transport, nil)

		result, err := d.DispatchSync(context.Background(), order.NotificationShipped, notifiableOrder(), "")
		require.NoError(t, err)
		assert.Equal(t, "msg_1", result.ID)
		assert.Equal(t, 1, transport.calls)
		assert.Empty(t, *sleeps)

		msg := transport.messages[0]
		assert.Equal(t, "ada@example.com", msg.To)
		assert.Equal(t, "orders@velvetfern.example", msg.From)
		assert.Contains(t, msg.Subject, "SO-2025-0042")
		assert.Contains(t, msg.HTML, "Ada Voss")
	})

	t.Run("backoff sequence before third attempt succeeds", func(t *testing.T) {
		transport := &fakeTransport{failures: 2}
		d, sleeps := testDispatcher(transport, nil)

		result, err := d.DispatchSync(context.Background(), order.NotificationShipped, notifiableOrder(), "")
		require.NoError(t, err)
		assert.Equal(t, "msg_1", result.ID)
		assert.Equal(t, 3, transport.calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)
	})

	t.Run("exhaustion returns last error", func(t *testing.T) {
		transport := &fakeTransport{failures: 10}
		d, sleeps := testDispatcher(transport, nil)

		_, err := d.DispatchSync(context.Background(), order.NotificationShipped, notifiableOrder(), "")
		require.ErrorIs(t, err, notificationdomain.ErrSendFailed)
		assert.Equal(t, 3, transport.calls)
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *sleeps)
	})

	t.Run("cancelled context stops retrying", func(t *testing.T) {
		transport := &fakeTransport{failures: 10}
		d, _ := testDispatcher(transport, nil)
		d.sleep = func(ctx context.Context, dur time.Duration) error {
			return context.Canceled
		}

		_, err := d.DispatchSync(context.Background(), order.NotificationShipped, notifiableOrder(), "")
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, transport.calls)
	})

	t.Run("nothing to send", func(t *testing.T) {
		d, _ := testDispatcher(&fakeTransport{}, nil)

		_, err := d.DispatchSync(context.Background(), order.NotificationNone, notifiableOrder(), "")
		assert.ErrorIs(t, err, ErrNothingToSend)
	})

	t.Run("recipient falls back to order email", func(t *testing.T) {
		transport := &fakeTransport{}
		d, _ := testDispatcher(transport, nil)

		ord := notifiableOrder()
		ord.ShippingAddress.Email = ""
		ord.CustomerEmail = "guest@example.com"

		_, err := d.DispatchSync(context.Background(), order.NotificationConfirmation, ord, "")
		require.NoError(t, err)
		assert.Equal(t, "guest@example.com", transport.messages[0].To)
	})

	t.Run("no recipient anywhere", func(t *testing.T) {
		d, _ := testDispatcher(&fakeTransport{}, nil)

		ord := notifiableOrder()
		ord.ShippingAddress.Email = ""

		_, err := d.DispatchSync(context.Background(), order.NotificationConfirmation, ord, "")
		assert.ErrorIs(t, err, ErrRecipientMissing)
	})
}

func TestDispatchQueuesJob(t *testing.T) {
	transport := &fakeTransport{}
	queue := &fakeQueue{}
	d, _ := testDispatcher(transport, queue)

	d.Dispatch(order.NotificationDelivered, notifiableOrder(), "")

	assert.Equal(t, 0, transport.calls, "caller returns before any delivery")
	require.Len(t, queue.jobs, 1)

	queue.jobs[0](context.Background())
	assert.Equal(t, 1, transport.calls)
}

func TestDispatchWithoutQueueDeliversInline(t *testing.T) {
	transport := &fakeTransport{}
	d, _ := testDispatcher(transport, nil)

	d.Dispatch(order.NotificationDelivered, notifiableOrder(), "")
	assert.Equal(t, 1, transport.calls)
}

func TestDispatchFullQueueDoesNotBlock(t *testing.T) {
	transport := &fakeTransport{}
	d, _ := testDispatcher(transport, &fakeQueue{full: true})

	d.Dispatch(order.NotificationDelivered, notifiableOrder(), "")
	assert.Equal(t, 0, transport.calls)
}

func TestComposeSubjects(t *testing.T) {
	ord := notifiableOrder()
	tests := []struct {
		typ  order.NotificationType
		want string
	}{
		{order.NotificationConfirmation, "Order SO-2025-0042 confirmed"},
		{order.NotificationProcessing, "Order SO-2025-0042 is being prepared"},
		{order.NotificationShipped, "Order SO-2025-0042 has shipped"},
		{order.NotificationDelivered, "Order SO-2025-0042 delivered"},
		{order.NotificationCancelled, "Order SO-2025-0042 cancelled"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			msg := Compose(tt.typ, ord, "ada@example.com", "orders@velvetfern.example", "https://velvetfern.example")
			assert.Equal(t, tt.want, msg.Subject)
			assert.Contains(t, msg.HTML, "https://velvetfern.example/orders/SO-2025-0042")
		})
	}

	t.Run("shipped with tracking", func(t *testing.T) {
		tracked := notifiableOrder()
		tracked.TrackingNumber = "TRK-9"
		msg := Compose(order.NotificationShipped, tracked, "ada@example.com", "from@x", "https://velvetfern.example")
		assert.Contains(t, msg.HTML, "TRK-9")
	})
}
