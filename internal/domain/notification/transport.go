package notification

import (
	"context"
	"errors"
)

var (
	// ErrTransportNotConfigured indicates required transport configuration is missing
	ErrTransportNotConfigured = errors.New("notification: transport not configured")
	// ErrSendFailed indicates the transport rejected or could not deliver the message
	ErrSendFailed = errors.New("notification: message send failed")
)

// Message is a lifecycle notification handed to the transport. HTML authoring
// happens upstream; this core only dispatches.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// SendResult is returned by the transport on successful delivery
type SendResult struct {
	// ID is the transport's message identifier
	ID string
}

// Transport delivers notification messages. Implementations live in the
// infrastructure layer and are injected into the dispatcher.
type Transport interface {
	Send(ctx context.Context, msg Message) (*SendResult, error)
}

// Attempt records one delivery attempt for logging. It is ephemeral: nothing
// persists it beyond the dispatch call that produced it.
type Attempt struct {
	Type        string
	Recipient   string
	OrderNumber string
	// Index is the 1-based attempt number
	Index int
	// Err is nil on success
	Err error
}
