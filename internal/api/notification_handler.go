package api

import (
	"net/http"
	"strconv"

	"github.com/campusflow/event-approval/internal/auth"
	"github.com/gin-gonic/gin"
)

// ListNotifications retrieves the authenticated user's notifications.
// Pass ?unread=true to filter to unread only.
func (h *Handlers) ListNotifications(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondErrorKind(c, http.StatusUnauthorized, kindUnauthorized, "authentication required")
		return
	}

	unreadOnly := c.Query("unread") == "true"
	limit, _ := paginationParams(c)

	notifications, err := h.notifications.ListByUser(c.Request.Context(), identity.UserID, unreadOnly, limit)
	if err != nil {
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}

	respondOK(c, "", notifications)
}

// MarkNotificationRead transitions one of the user's notifications to READ
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondErrorKind(c, http.StatusUnauthorized, kindUnauthorized, "authentication required")
		return
	}

	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || notificationID <= 0 {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "notification id must be a positive integer")
		return
	}

	updated, err := h.notifications.MarkRead(c.Request.Context(), notificationID, identity.UserID)
	if err != nil {
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}
	if !updated {
		respondErrorKind(c, http.StatusNotFound, kindNotFound, "notification not found or already read")
		return
	}

	respondOK(c, "Notification marked as read", nil)
}
