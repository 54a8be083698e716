package fulfillment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

var (
	// ErrNotConfigured indicates neither credentials nor a static token are set
	ErrNotConfigured = errors.New("fulfillment: platform not configured")
	// ErrAuthFailed indicates the token endpoint rejected the credentials
	ErrAuthFailed = errors.New("fulfillment: platform authentication failed")
	// ErrTokenMissing indicates the token endpoint responded without a token
	ErrTokenMissing = errors.New("fulfillment: token endpoint returned no token")
	// ErrUnavailable indicates the platform could not be reached at all
	ErrUnavailable = errors.New("fulfillment: platform temporarily unavailable")
	// ErrInvalidResponse indicates the platform returned an unparseable body
	ErrInvalidResponse = errors.New("fulfillment: invalid platform response")
)

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// SyncResult is the outcome of a single platform operation. Remote failures
// are data, not errors: a failed push carries Success=false and the platform's
// message, and callers decide what to do with it.
type SyncResult struct {
	// Success indicates the platform accepted the operation
	Success bool
	// Payload is the raw platform response body for successful operations
	Payload []byte
	// Error is the platform's message or HTTP status text on failure
	Error string
	// DuplicateSKU is the heuristic verdict that the failure means the entity
	// already exists remotely. The raw message in Error is kept alongside so
	// operators can tell a genuine validation error from a duplicate.
	DuplicateSKU bool
}

// Failure builds a failed SyncResult carrying the platform message
func Failure(msg string) *SyncResult {
	return &SyncResult{Success: false, Error: msg}
}

// BulkSyncError describes one failed item of a bulk sync
type BulkSyncError struct {
	SKU       string
	Error     string
	Duplicate bool
}

// BulkSyncResult aggregates the outcome of a catalog-wide sync. Every
// attempted item increments exactly one of SuccessCount or FailedCount;
// skipped items (no SKU) appear only in SkippedCount.
type BulkSyncResult struct {
	SuccessCount int
	FailedCount  int
	SkippedCount int
	Errors       []BulkSyncError
}

// ---------------------------------------------------------------------------
// Requests
// ---------------------------------------------------------------------------

// SKUResolver maps an order item's snapshot product reference to the SKU it
// resolves to in the live catalog. A missing entry resolves to an empty SKU.
type SKUResolver map[uuid.UUID]string

// Resolve returns the SKU for a snapshot product reference, or "" when the
// reference no longer matches the live catalog.
func (r SKUResolver) Resolve(productID uuid.UUID) string {
	return r[productID]
}

// OrderUpdate carries the fields of a partial order update. Nil fields are
// left untouched on the platform.
type OrderUpdate struct {
	Status         *order.Status
	TrackingNumber *string
	Notes          *string
}

// ---------------------------------------------------------------------------
// Platform Port
// ---------------------------------------------------------------------------

// Platform is the port to the external logistics/fulfillment system. Concrete
// implementations live in the infrastructure layer and own the wire mapping.
// Only configuration and authentication failures are returned as errors;
// ordinary remote rejections come back as a SyncResult with Success=false.
type Platform interface {
	// CreateOrder pushes an order to the platform. SKUs for the order's item
	// snapshots are pre-resolved by the caller against the live catalog.
	CreateOrder(ctx context.Context, ord *order.Order, skus SKUResolver) (*SyncResult, error)
	// OrderStatus fetches the platform's view of an order by order number
	OrderStatus(ctx context.Context, orderNumber string) (*SyncResult, error)
	// UpdateOrder patches an order on the platform, keyed by order number
	UpdateOrder(ctx context.Context, orderNumber string, update OrderUpdate) (*SyncResult, error)
	// CreateProduct registers a catalog product on the platform
	CreateProduct(ctx context.Context, product *catalog.Product) (*SyncResult, error)
	// UpdateProduct updates a catalog product on the platform
	UpdateProduct(ctx context.Context, product *catalog.Product) (*SyncResult, error)
}
