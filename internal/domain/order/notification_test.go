package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationTypeForTransition(t *testing.T) {
	tests := []struct {
		name string
		old  Status
		new  Status
		want NotificationType
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, NotificationConfirmation},
		{"confirmed to processing", StatusConfirmed, StatusProcessing, NotificationProcessing},
		{"processing to shipped", StatusProcessing, StatusShipped, NotificationShipped},
		{"shipped to delivered", StatusShipped, StatusDelivered, NotificationDelivered},
		{"any to cancelled", StatusPending, StatusCancelled, NotificationCancelled},
		{"refunded has no message", StatusDelivered, StatusRefunded, NotificationNone},
		{"pending has no message", StatusCancelled, StatusPending, NotificationNone},
		{"no-op transition", StatusShipped, StatusShipped, NotificationNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NotificationTypeForTransition(tt.old, tt.new))
		})
	}
}

func TestShouldNotify(t *testing.T) {
	notifiable := []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

	for _, target := range notifiable {
		t.Run("to "+target.String(), func(t *testing.T) {
			assert.True(t, ShouldNotify(StatusPending, target))
		})
		t.Run("no-op "+target.String(), func(t *testing.T) {
			assert.False(t, ShouldNotify(target, target))
		})
	}

	t.Run("confirmation excluded from diff check", func(t *testing.T) {
		assert.False(t, ShouldNotify(StatusPending, StatusConfirmed))
	})

	t.Run("refunded not notification-worthy", func(t *testing.T) {
		assert.False(t, ShouldNotify(StatusDelivered, StatusRefunded))
	})
}

func TestOrder_Billing(t *testing.T) {
	shipping := Address{Name: "Ada Voss", Line1: "12 Fern Way", City: "Leeds"}

	t.Run("falls back to shipping address", func(t *testing.T) {
		o := &Order{ShippingAddress: shipping}
		assert.Equal(t, shipping, o.Billing())
	})

	t.Run("uses billing address when present", func(t *testing.T) {
		billing := Address{Name: "Ada Voss", Line1: "9 High St", City: "York"}
		o := &Order{ShippingAddress: shipping, BillingAddress: &billing}
		assert.Equal(t, billing, o.Billing())
	})
}

func TestOrder_RecipientEmail(t *testing.T) {
	t.Run("prefers shipping email", func(t *testing.T) {
		o := &Order{
			ShippingAddress: Address{Email: "ship@example.com"},
			CustomerEmail:   "guest@example.com",
		}
		assert.Equal(t, "ship@example.com", o.RecipientEmail())
	})

	t.Run("guest fallback", func(t *testing.T) {
		o := &Order{CustomerEmail: "guest@example.com"}
		assert.Equal(t, "guest@example.com", o.RecipientEmail())
	})
}
