package api

import (
	"errors"
	"net/http"

	"github.com/campusflow/event-approval/internal/engine"
	"github.com/gin-gonic/gin"
)

// Error kind strings surfaced to API clients
const (
	kindUnauthorized        = "UNAUTHORIZED"
	kindForbidden           = "FORBIDDEN"
	kindNotFound            = "NOT_FOUND"
	kindStateConflict       = "STATE_CONFLICT"
	kindIncompleteApprovals = "INCOMPLETE_APPROVALS"
	kindValidationError     = "VALIDATION_ERROR"
	kindPersistenceFailure  = "PERSISTENCE_FAILURE"
)

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondErrorKind(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   kind,
		"message": message,
	})
}

// respondEngineError maps the engine's error taxonomy onto HTTP responses.
// Every expected condition gets its own kind and message; only persistence
// failures surface as a generic 500.
func respondEngineError(c *gin.Context, err error) {
	var incomplete *engine.IncompleteApprovalsError

	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   kindIncompleteApprovals,
			"message": incomplete.Error(),
			"missing": incomplete.Missing,
		})
	case errors.Is(err, engine.ErrForbidden):
		respondErrorKind(c, http.StatusForbidden, kindForbidden, err.Error())
	case errors.Is(err, engine.ErrPlanNotFound):
		respondErrorKind(c, http.StatusNotFound, kindNotFound, err.Error())
	case errors.Is(err, engine.ErrDuplicateAction),
		errors.Is(err, engine.ErrStateConflict):
		respondErrorKind(c, http.StatusConflict, kindStateConflict, err.Error())
	case errors.Is(err, engine.ErrValidation):
		respondErrorKind(c, http.StatusBadRequest, kindValidationError, err.Error())
	default:
		respondErrorKind(c, http.StatusInternalServerError, kindPersistenceFailure, "internal error")
	}
}
