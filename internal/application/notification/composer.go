package notification

import (
	"fmt"

	notificationdomain "github.com/storefront/backend/internal/domain/notification"
	"github.com/storefront/backend/internal/domain/order"
)

// Compose builds the outbound message for a lifecycle notification. Bodies
// are deliberately plain; rich templating belongs to the storefront, not to
// this core.
func Compose(typ order.NotificationType, ord *order.Order, recipient, from, appURL string) notificationdomain.Message {
	subject, intro := subjectAndIntro(typ, ord)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>%s</p><p>You can review your order at <a href=%q>%s/orders/%s</a>.</p>",
		recipientName(ord), intro, appURL+"/orders/"+ord.OrderNumber, appURL, ord.OrderNumber,
	)
	return notificationdomain.Message{
		From:    from,
		To:      recipient,
		Subject: subject,
		HTML:    html,
	}
}

func subjectAndIntro(typ order.NotificationType, ord *order.Order) (subject, intro string) {
	switch typ {
	case order.NotificationConfirmation:
		return fmt.Sprintf("Order %s confirmed", ord.OrderNumber),
			fmt.Sprintf("thanks for your order! We have received order %s and will start preparing it shortly.", ord.OrderNumber)
	case order.NotificationProcessing:
		return fmt.Sprintf("Order %s is being prepared", ord.OrderNumber),
			fmt.Sprintf("your order %s is now being prepared for dispatch.", ord.OrderNumber)
	case order.NotificationShipped:
		intro := fmt.Sprintf("your order %s is on its way.", ord.OrderNumber)
		if ord.TrackingNumber != "" {
			intro = fmt.Sprintf("your order %s is on its way. Track it with %s.", ord.OrderNumber, ord.TrackingNumber)
		}
		return fmt.Sprintf("Order %s has shipped", ord.OrderNumber), intro
	case order.NotificationDelivered:
		return fmt.Sprintf("Order %s delivered", ord.OrderNumber),
			fmt.Sprintf("your order %s has been delivered. We hope you love it.", ord.OrderNumber)
	case order.NotificationCancelled:
		return fmt.Sprintf("Order %s cancelled", ord.OrderNumber),
			fmt.Sprintf("your order %s has been cancelled. Any captured payment will be refunded.", ord.OrderNumber)
	default:
		return fmt.Sprintf("Update on order %s", ord.OrderNumber),
			fmt.Sprintf("there is an update on your order %s.", ord.OrderNumber)
	}
}

func recipientName(ord *order.Order) string {
	if ord.ShippingAddress.Name != "" {
		return ord.ShippingAddress.Name
	}
	if ord.CustomerName != "" {
		return ord.CustomerName
	}
	return "there"
}
