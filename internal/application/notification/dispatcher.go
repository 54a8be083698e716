package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	notificationdomain "github.com/storefront/backend/internal/domain/notification"
	"github.com/storefront/backend/internal/domain/order"
)

// Errors for dispatch
var (
	ErrNothingToSend    = errors.New("notification: transition is not notification-worthy")
	ErrRecipientMissing = errors.New("notification: order has no recipient email")
)

// Config tunes the dispatcher's retry policy and message composition
type Config struct {
	// MaxRetries is the total number of delivery attempts per message
	MaxRetries int
	// BaseDelay is the wait before the second attempt; it doubles per attempt
	BaseDelay time.Duration
	// From is the sender address stamped on every message
	From string
	// AppURL is the storefront base URL linked from message bodies
	AppURL string
}

func (c *Config) applyDefaults() {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = time.Second
	}
}

// Dispatcher sends lifecycle notifications. Dispatch hands the work to a
// background queue so the triggering state change never waits on mail
// delivery; DispatchSync delivers inline for the resend path.
type Dispatcher struct {
	transport notificationdomain.Transport
	queue     notificationdomain.Queue
	config    Config
	logger    *zap.Logger

	// sleep is replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDispatcher creates a dispatcher. queue may be nil, in which case
// Dispatch degrades to synchronous delivery.
func NewDispatcher(transport notificationdomain.Transport, queue notificationdomain.Queue, config Config, logger *zap.Logger) *Dispatcher {
	config.applyDefaults()
	return &Dispatcher{
		transport: transport,
		queue:     queue,
		config:    config,
		logger:    logger,
		sleep:     sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Dispatch enqueues a notification for background delivery and returns
// immediately. Delivery failures are retried by the worker and logged on
// exhaustion; they never surface to the caller.
func (d *Dispatcher) Dispatch(typ order.NotificationType, ord *order.Order, recipient string) {
	if d.queue == nil {
		if _, err := d.DispatchSync(context.Background(), typ, ord, recipient); err != nil {
			d.logFailure(typ, ord, recipient, err)
		}
		return
	}

	accepted := d.queue.Enqueue(func(ctx context.Context) {
		if _, err := d.DispatchSync(ctx, typ, ord, recipient); err != nil {
			d.logFailure(typ, ord, recipient, err)
		}
	})
	if !accepted {
		d.logFailure(typ, ord, recipient, errors.New("queue rejected job"))
	}
}

// DispatchSync composes and delivers one notification inline, retrying with
// exponential backoff. It returns the transport's result of the successful
// attempt, or the last error after the final attempt.
func (d *Dispatcher) DispatchSync(ctx context.Context, typ order.NotificationType, ord *order.Order, recipient string) (*notificationdomain.SendResult, error) {
	if typ == order.NotificationNone {
		return nil, ErrNothingToSend
	}
	if recipient == "" {
		recipient = ord.RecipientEmail()
	}
	if recipient == "" {
		return nil, ErrRecipientMissing
	}

	msg := Compose(typ, ord, recipient, d.config.From, d.config.AppURL)

	var result *notificationdomain.SendResult
	err := d.retry(ctx, typ, ord.OrderNumber, recipient, func(ctx context.Context) error {
		var err error
		result, err = d.transport.Send(ctx, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// retry runs send up to MaxRetries times, waiting BaseDelay * 2^(attempt-1)
// between attempts. Every attempt is logged whether or not another follows.
func (d *Dispatcher) retry(ctx context.Context, typ order.NotificationType, orderNumber, recipient string, send func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= d.config.MaxRetries; attempt++ {
		lastErr = send(ctx)
		d.logAttempt(notificationdomain.Attempt{
			Type:        string(typ),
			Recipient:   recipient,
			OrderNumber: orderNumber,
			Index:       attempt,
			Err:         lastErr,
		})
		if lastErr == nil {
			return nil
		}
		if attempt == d.config.MaxRetries {
			break
		}
		delay := d.config.BaseDelay * (1 << (attempt - 1))
		if err := d.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return fmt.Errorf("notification: all %d attempts failed: %w", d.config.MaxRetries, lastErr)
}

func (d *Dispatcher) logAttempt(a notificationdomain.Attempt) {
	fields := []zap.Field{
		zap.String("type", a.Type),
		zap.String("recipient", a.Recipient),
		zap.String("order_number", a.OrderNumber),
		zap.Int("attempt", a.Index),
	}
	if a.Err != nil {
		d.logger.Warn("notification attempt failed", append(fields, zap.Error(a.Err))...)
		return
	}
	d.logger.Info("notification sent", fields...)
}

func (d *Dispatcher) logFailure(typ order.NotificationType, ord *order.Order, recipient string, err error) {
	d.logger.Error("notification not delivered",
		zap.String("type", string(typ)),
		zap.String("recipient", recipient),
		zap.String("order_number", ord.OrderNumber),
		zap.Error(err))
}
