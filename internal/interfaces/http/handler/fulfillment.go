package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applicationfulfillment "github.com/storefront/backend/internal/application/fulfillment"
	fulfillmentdomain "github.com/storefront/backend/internal/domain/fulfillment"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// FulfillmentHandler exposes the fulfillment operations to admin callers
type FulfillmentHandler struct {
	BaseHandler
	service     *applicationfulfillment.FulfillmentService
	productSync *applicationfulfillment.ProductSyncService
	orders      order.Repository
}

// NewFulfillmentHandler creates a fulfillment handler
func NewFulfillmentHandler(
	service *applicationfulfillment.FulfillmentService,
	productSync *applicationfulfillment.ProductSyncService,
	orders order.Repository,
) *FulfillmentHandler {
	return &FulfillmentHandler{
		service:     service,
		productSync: productSync,
		orders:      orders,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *FulfillmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/fulfillment")
	group.POST("/orders/:number/sync", h.SyncOrder)
	group.GET("/orders/:number", h.OrderStatus)
	group.PATCH("/orders/:number", h.UpdateOrder)
	group.POST("/products/sync", h.SyncProducts)
}

// resolveOrderID accepts either an order UUID or an order number in the path
func (h *FulfillmentHandler) resolveOrderID(c *gin.Context) (uuid.UUID, bool) {
	ref := c.Param("number")
	if id, err := uuid.Parse(ref); err == nil {
		return id, true
	}
	ord, err := h.orders.FindByNumber(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			h.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
		} else {
			h.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return uuid.Nil, false
	}
	return ord.ID, true
}

// SyncOrder pushes one order to the fulfillment platform
func (h *FulfillmentHandler) SyncOrder(c *gin.Context) {
	id, ok := h.resolveOrderID(c)
	if !ok {
		return
	}

	result, err := h.service.SyncOrder(c.Request.Context(), id)
	if err != nil {
		h.syncError(c, err)
		return
	}
	h.syncResult(c, result)
}

// OrderStatus fetches the platform's view of an order
func (h *FulfillmentHandler) OrderStatus(c *gin.Context) {
	result, err := h.service.OrderStatus(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.syncError(c, err)
		return
	}
	h.syncResult(c, result)
}

// orderUpdateRequest is the PATCH body for remote order updates
type orderUpdateRequest struct {
	Status         *string `json:"status" binding:"omitempty,oneof=PENDING CONFIRMED PROCESSING SHIPPED DELIVERED CANCELLED REFUNDED"`
	TrackingNumber *string `json:"tracking_number"`
	Notes          *string `json:"notes"`
}

// UpdateOrder patches an order on the fulfillment platform
func (h *FulfillmentHandler) UpdateOrder(c *gin.Context) {
	var req orderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	update := fulfillmentdomain.OrderUpdate{
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
	}
	if req.Status != nil {
		status := order.Status(*req.Status)
		update.Status = &status
	}

	result, err := h.service.UpdateOrder(c.Request.Context(), c.Param("number"), update)
	if err != nil {
		h.syncError(c, err)
		return
	}
	h.syncResult(c, result)
}

// SyncProducts pushes the full catalog to the platform
func (h *FulfillmentHandler) SyncProducts(c *gin.Context) {
	result, err := h.productSync.SyncAll(c.Request.Context())
	if err != nil {
		h.syncError(c, err)
		return
	}
	h.Success(c, result)
}

// syncResult maps a platform SyncResult to the HTTP response. Remote
// rejections are reported as a 502 with the platform's message.
func (h *FulfillmentHandler) syncResult(c *gin.Context, result *fulfillmentdomain.SyncResult) {
	if !result.Success {
		h.Error(c, http.StatusBadGateway, "PLATFORM_REJECTED", result.Error)
		return
	}
	h.Success(c, gin.H{"platform_response": string(result.Payload)})
}

// syncError maps client-side fulfillment errors to HTTP status codes
func (h *FulfillmentHandler) syncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		h.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
	case errors.Is(err, order.ErrOrderNumberRequired):
		h.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	case errors.Is(err, fulfillmentdomain.ErrNotConfigured):
		h.Error(c, http.StatusServiceUnavailable, "NOT_CONFIGURED", err.Error())
	case errors.Is(err, fulfillmentdomain.ErrAuthFailed),
		errors.Is(err, fulfillmentdomain.ErrTokenMissing):
		h.Error(c, http.StatusBadGateway, "PLATFORM_AUTH_FAILED", err.Error())
	default:
		h.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

// Ensure FulfillmentHandler implements the route registrar contract
var _ router.RouteRegistrar = (*FulfillmentHandler)(nil)
