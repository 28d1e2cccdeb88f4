package api

import (
	"net/http"
	"strconv"

	"github.com/campusflow/event-approval/internal/auth"
	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/campusflow/event-approval/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// createPlanRequest is the JSON body for POST /event-plans
type createPlanRequest struct {
	Title         string `json:"title" binding:"required"`
	Type          string `json:"type" binding:"required"`
	OrganizerName string `json:"organizer_name" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Participants  int    `json:"participants" binding:"required"`
	Facilities    string `json:"facilities"`
	Documents     string `json:"documents"`
}

// CreatePlan submits a new event plan for the authenticated organizer
func (h *Handlers) CreatePlan(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondErrorKind(c, http.StatusUnauthorized, kindUnauthorized, "authentication required")
		return
	}

	var body createPlanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateParticipants(body.Participants); err != nil {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, err.Error())
		return
	}
	if err := utils.ValidateEventDate(body.Date); err != nil {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, err.Error())
		return
	}

	plan := &entity.EventPlan{
		OrganizerUserID: identity.UserID,
		Title:           utils.SanitizeString(body.Title),
		Type:            utils.SanitizeString(body.Type),
		OrganizerName:   utils.SanitizeString(body.OrganizerName),
		Date:            body.Date,
		Time:            body.Time,
		Participants:    body.Participants,
		Facilities:      body.Facilities,
		Documents:       body.Documents,
	}

	if err := h.plans.Create(c.Request.Context(), plan); err != nil {
		h.logger.Error("Failed to create event plan",
			zap.Int64("organizer_user_id", identity.UserID),
			zap.Error(err))
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}

	respondCreated(c, "Event plan submitted", plan)
}

// GetPlan retrieves one event plan
func (h *Handlers) GetPlan(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || planID <= 0 {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "event plan id must be a positive integer")
		return
	}

	plan, err := h.plans.GetByID(c.Request.Context(), planID)
	if err != nil {
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}
	if plan == nil {
		respondErrorKind(c, http.StatusNotFound, kindNotFound, "event plan not found")
		return
	}

	respondOK(c, "", plan)
}

// ListPlans retrieves the authenticated organizer's plans
func (h *Handlers) ListPlans(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		respondErrorKind(c, http.StatusUnauthorized, kindUnauthorized, "authentication required")
		return
	}

	limit, offset := paginationParams(c)
	plans, err := h.plans.ListByOrganizer(c.Request.Context(), identity.UserID, limit, offset)
	if err != nil {
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}

	respondOK(c, "", plans)
}

// GetPlanHistory retrieves the approval audit trail for an event plan
func (h *Handlers) GetPlanHistory(c *gin.Context) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || planID <= 0 {
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, "event plan id must be a positive integer")
		return
	}

	records, err := h.history.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
		return
	}

	respondOK(c, "", records)
}

func paginationParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
