package api

import (
	"net/http"
	"strconv"

	"github.com/campusflow/event-approval/internal/auth"
	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListLetters retrieves all signed letters for an event plan
func (h *Handlers) ListLetters(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || planID <= 0 {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "event plan id must be a positive integer")
		return
	}

	letters, err := h.letters.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}

	respondOK(c, "", letters)
}

// MarkLetterSent bumps a letter's status to SENT. Super-admin only.
func (h *Handlers) MarkLetterSent(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondErrorKind(c, http.StatusUnauthorized, kindUnauthorized, "authentication required")
		return
	}
	if identity.Role != entity.RoleSuperAdmin {
		respondErrorKind(c, http.StatusForbidden, kindForbidden, "only the super admin may mark letters sent")
		return
	}

	letterID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || letterID <= 0 {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "letter id must be a positive integer")
		return
	}

	if err := h.letters.MarkSent(c.Request.Context(), letterID); err != nil {
		h.logger.Warn("Failed to mark letter sent",
			zap.Int64("letter_id", letterID),
			zap.Error(err))
		respondErrorKind(c, http.StatusNotFound, kindNotFound, "letter not found or already sent")
		return
	}

	respondOK(c, "Letter marked as sent", nil)
}
