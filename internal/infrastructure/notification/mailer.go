package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	notificationdomain "github.com/storefront/backend/internal/domain/notification"
)

// maxResponseSize limits response bodies to prevent memory exhaustion (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Mailer implements the notification Transport port against an HTTP mail API
type Mailer struct {
	config     *Config
	httpClient *http.Client
}

// NewMailer creates a mail transport with the given configuration. Missing
// required keys are a configuration error and fail before any network I/O.
func NewMailer(config *Config) (*Mailer, error) {
	if missing := config.MissingKeys(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", notificationdomain.ErrTransportNotConfigured, missing)
	}
	config.applyDefaults()
	return &Mailer{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// sendRequest is the mail API wire shape
type sendRequest struct {
	From    emailAddress `json:"from"`
	To      emailAddress `json:"to"`
	Subject string       `json:"subject"`
	HTML    string       `json:"html"`
}

type emailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// sendResponse is the mail API response envelope
type sendResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// Send delivers one message through the mail API
func (m *Mailer) Send(ctx context.Context, msg notificationdomain.Message) (*notificationdomain.SendResult, error) {
	from := msg.From
	if from == "" {
		from = m.config.SenderAddress
	}

	body, err := json.Marshal(sendRequest{
		From:    emailAddress{Email: from, Name: m.config.FromName},
		To:      emailAddress{Email: msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return nil, fmt.Errorf("notification: failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.BaseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("notification: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.config.APIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", notificationdomain.ErrSendFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("notification: failed to read response: %w", err)
	}

	var envelope sendResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Message != "" {
			return nil, fmt.Errorf("%w: %s", notificationdomain.ErrSendFailed, envelope.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", notificationdomain.ErrSendFailed, resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("notification: failed to parse response: %w", err)
	}
	return &notificationdomain.SendResult{ID: envelope.ID}, nil
}

// Ensure Mailer implements the Transport port
var _ notificationdomain.Transport = (*Mailer)(nil)
