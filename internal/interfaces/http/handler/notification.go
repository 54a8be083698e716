package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	applicationnotification "github.com/storefront/backend/internal/application/notification"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// NotificationHandler exposes the notification resend operation
type NotificationHandler struct {
	BaseHandler
	dispatcher *applicationnotification.Dispatcher
	orders     order.Repository
}

// NewNotificationHandler creates a notification handler
func NewNotificationHandler(dispatcher *applicationnotification.Dispatcher, orders order.Repository) *NotificationHandler {
	return &NotificationHandler{
		dispatcher: dispatcher,
		orders:     orders,
	}
}

// RegisterRoutes implements router.RouteRegistrar
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications/resend", h.Resend)
}

// resendRequest is the body for the resend operation. Type defaults to the
// message matching the order's current status.
type resendRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=confirmation processing shipped delivered cancelled"`
	Recipient   string `json:"recipient" binding:"omitempty,email"`
}

// Resend delivers a lifecycle notification synchronously, retrying with the
// standard backoff. Used by operators after a delivery failure.
func (h *NotificationHandler) Resend(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	ord, err := h.orders.FindByNumber(c.Request.Context(), req.OrderNumber)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			h.Error(c, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
		} else {
			h.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		}
		return
	}

	typ := order.NotificationType(req.Type)
	if typ == order.NotificationNone {
		typ = order.NotificationTypeForStatus(ord.Status)
	}

	result, err := h.dispatcher.DispatchSync(c.Request.Context(), typ, ord, req.Recipient)
	if err != nil {
		switch {
		case errors.Is(err, applicationnotification.ErrNothingToSend):
			h.Error(c, http.StatusUnprocessableEntity, "NOTHING_TO_SEND",
				"order status has no associated notification")
		case errors.Is(err, applicationnotification.ErrRecipientMissing):
			h.Error(c, http.StatusUnprocessableEntity, "RECIPIENT_MISSING",
				"order has no recipient email")
		default:
			h.Error(c, http.StatusBadGateway, "SEND_FAILED", err.Error())
		}
		return
	}

	h.Success(c, gin.H{"message_id": result.ID, "type": string(typ)})
}

// Ensure NotificationHandler implements the route registrar contract
var _ router.RouteRegistrar = (*NotificationHandler)(nil)
