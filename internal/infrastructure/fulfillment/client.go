package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/storefront/backend/internal/domain/catalog"
	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
)

// maxResponseSize limits response bodies to prevent memory exhaustion (10MB)
const maxResponseSize = 10 * 1024 * 1024

// apiKeyHeader is the static key header required on every request
const apiKeyHeader = "x-api-key"

// Client implements the fulfillment Platform port against the external
// logistics platform's HTTP API. It owns the process-wide token cache.
type Client struct {
	config     *Config
	httpClient *http.Client

	// mu guards the token cache. The refresh happens under the lock, so
	// concurrent callers that observe an expired token converge on a single
	// token request.
	mu          sync.Mutex
	token       string
	tokenExpiry time.Time

	now func() time.Time
}

// NewClient creates a platform client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		now: time.Now,
	}, nil
}

// ---------------------------------------------------------------------------
// Authentication
// ---------------------------------------------------------------------------

// AuthToken returns a valid bearer token. A cached token with a future expiry
// is returned without any network call. Otherwise configured credentials are
// exchanged at the token endpoint and the result is cached for the configured
// TTL; lacking credentials, the static token is used. Auth and configuration
// failures are returned as errors and never as a SyncResult.
func (c *Client) AuthToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.tokenExpiry.After(c.now()) {
		return c.token, nil
	}

	if !c.config.HasCredentials() {
		if c.config.StaticToken != "" {
			return c.config.StaticToken, nil
		}
		return "", fulfillmentdomain.ErrNotConfigured
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.tokenExpiry = c.now().Add(c.config.TokenTTL)
	return token, nil
}

// fetchToken exchanges the configured credentials at the token endpoint
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(tokenRequest{
		Email:       c.config.AuthEmail,
		Password:    c.config.AuthPassword,
		LocationKey: c.config.LocationKey,
	})
	if err != nil {
		return "", fmt.Errorf("fulfillment: failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/access/token", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("fulfillment: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fulfillmentdomain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("fulfillment: failed to read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d", fulfillmentdomain.ErrAuthFailed, resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", fmt.Errorf("%w: %v", fulfillmentdomain.ErrInvalidResponse, err)
	}
	if tr.bearer() == "" {
		return "", fulfillmentdomain.ErrTokenMissing
	}
	return tr.bearer(), nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// CreateOrder pushes an order to the platform
func (c *Client) CreateOrder(ctx context.Context, ord *order.Order, skus fulfillmentdomain.SKUResolver) (*fulfillmentdomain.SyncResult, error) {
	payload := MapOrder(ord, skus, c.config)
	return c.doCall(ctx, http.MethodPost, "/orders", payload)
}

// OrderStatus fetches the platform's view of an order
func (c *Client) OrderStatus(ctx context.Context, orderNumber string) (*fulfillmentdomain.SyncResult, error) {
	if orderNumber == "" {
		return nil, order.ErrOrderNumberRequired
	}
	return c.doCall(ctx, http.MethodGet, "/orders/"+orderNumber, nil)
}

// UpdateOrder patches an order on the platform, keyed by order number
func (c *Client) UpdateOrder(ctx context.Context, orderNumber string, update fulfillmentdomain.OrderUpdate) (*fulfillmentdomain.SyncResult, error) {
	if orderNumber == "" {
		return nil, order.ErrOrderNumberRequired
	}
	return c.doCall(ctx, http.MethodPatch, "/orders/"+orderNumber, MapOrderUpdate(update))
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// CreateProduct registers a product on the platform. Failures are classified
// for likely-duplicate SKUs; the raw message stays on the result either way.
func (c *Client) CreateProduct(ctx context.Context, product *catalog.Product) (*fulfillmentdomain.SyncResult, error) {
	result, err := c.doCall(ctx, http.MethodPost, "/products", MapProduct(product, c.config))
	if err != nil {
		return nil, err
	}
	if !result.Success {
		result.DuplicateSKU = IsDuplicateSKU(result.Error)
	}
	return result, nil
}

// UpdateProduct updates a product on the platform
func (c *Client) UpdateProduct(ctx context.Context, product *catalog.Product) (*fulfillmentdomain.SyncResult, error) {
	return c.doCall(ctx, http.MethodPut, "/products", MapProduct(product, c.config))
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doCall acquires a token, issues the request and folds the outcome into a
// SyncResult. Remote rejections (non-2xx) and transport failures come back as
// data; only configuration and auth failures return a Go error.
func (c *Client) doCall(ctx context.Context, method, path string, payload any) (*fulfillmentdomain.SyncResult, error) {
	token, err := c.AuthToken(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		bodyBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("fulfillment: failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("fulfillment: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.config.APIKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fulfillmentdomain.Failure(fmt.Sprintf("%v: %v", fulfillmentdomain.ErrUnavailable, err)), nil
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fulfillmentdomain.Failure(fmt.Sprintf("failed to read response: %v", err)), nil
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &fulfillmentdomain.SyncResult{Success: true, Payload: respBody}, nil
	}

	return fulfillmentdomain.Failure(platformMessage(respBody, resp.StatusCode)), nil
}

// platformMessage extracts the platform's error message from a failed
// response, falling back to the HTTP status text.
func platformMessage(body []byte, statusCode int) string {
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return http.StatusText(statusCode)
}

// Ensure Client implements the Platform port
var _ fulfillmentdomain.Platform = (*Client)(nil)
