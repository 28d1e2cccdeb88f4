package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/campusflow/event-approval/internal/auth"
	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/campusflow/event-approval/internal/engine"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// actionRequest is the JSON body for POST /event-plans/:id/actions
type actionRequest struct {
	Action        string `json:"action" binding:"required"`
	Comment       string `json:"comment"`
	SignatureData string `json:"signature_data"`
	FilePath      string `json:"file_path"`
	FileName      string `json:"file_name"`
}

var apiActions = map[string]string{
	"approve":       entity.ActionApprove,
	"reject":        entity.ActionReject,
	"forward":       entity.ActionForward,
	"send_letters":  entity.ActionSendLetters,
	"final_approve": entity.ActionFinalApprove,
	"final_reject":  entity.ActionFinalReject,
}

// HandleAction applies one workflow action to an event plan on behalf of
// the authenticated authority
func (h *Handlers) HandleAction(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondErrorKind(c, http.StatusUnauthorized, kindUnauthorized, "authentication required")
		return
	}

	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || planID <= 0 {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "event plan id must be a positive integer")
		return
	}

	var body actionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "invalid request body: "+err.Error())
		return
	}

	action, ok := apiActions[strings.ToLower(body.Action)]
	if !ok {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "unknown action: "+body.Action)
		return
	}

	result, err := h.workflow.Execute(c.Request.Context(), &engine.ActionRequest{
		PlanID:        planID,
		ActorUserID:   identity.UserID,
		ActorRole:     identity.Role,
		Action:        action,
		Comment:       body.Comment,
		SignatureData: body.SignatureData,
		FilePath:      body.FilePath,
		FileName:      body.FileName,
	})
	if err != nil {
		h.logger.Warn("Workflow action rejected",
			zap.Int64("plan_id", planID),
			zap.String("role", identity.Role),
			zap.String("action", action),
			zap.Error(err))
		respondEngineError(c, err)
		return
	}

	respondOK(c, result.Message, result)
}
