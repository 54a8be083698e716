package order

// NotificationType identifies the lifecycle message sent for an order
// status transition.
type NotificationType string

const (
	NotificationConfirmation NotificationType = "confirmation"
	NotificationProcessing   NotificationType = "processing"
	NotificationShipped      NotificationType = "shipped"
	NotificationDelivered    NotificationType = "delivered"
	NotificationCancelled    NotificationType = "cancelled"
	// NotificationNone indicates the transition is not notification-worthy
	NotificationNone NotificationType = ""
)

// notificationByStatus is the single dispatch table for status-driven
// notifications. CONFIRMED is a regular entry here rather than a special
// creation-path case, so every transition goes through the same lookup.
var notificationByStatus = map[Status]NotificationType{
	StatusConfirmed:  NotificationConfirmation,
	StatusProcessing: NotificationProcessing,
	StatusShipped:    NotificationShipped,
	StatusDelivered:  NotificationDelivered,
	StatusCancelled:  NotificationCancelled,
}

// NotificationTypeForTransition returns the message type for a status
// transition, or NotificationNone when the transition is not
// notification-worthy. A no-op transition (old == new) never notifies.
func NotificationTypeForTransition(old, new Status) NotificationType {
	if old == new {
		return NotificationNone
	}
	if t, ok := notificationByStatus[new]; ok {
		return t
	}
	return NotificationNone
}

// NotificationTypeForStatus returns the message type associated with a status
// regardless of the previous one. Used by the resend path where only the
// current status is known.
func NotificationTypeForStatus(s Status) NotificationType {
	if t, ok := notificationByStatus[s]; ok {
		return t
	}
	return NotificationNone
}

// ShouldNotify reports whether a status transition triggers a status-change
// email. Confirmation mails are excluded: they are sent on order creation
// through the same dispatch table, not through this diff check.
func ShouldNotify(old, new Status) bool {
	t := NotificationTypeForTransition(old, new)
	return t != NotificationNone && t != NotificationConfirmation
}
