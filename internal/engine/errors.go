package engine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrForbidden is returned when the acting role is not permitted to
	// perform the requested action
	ErrForbidden = errors.New("role not permitted for this action")

	// ErrPlanNotFound is returned when the event plan does not exist
	ErrPlanNotFound = errors.New("event plan not found")

	// ErrStateConflict is returned when the plan's status does not satisfy
	// the action's precondition
	ErrStateConflict = errors.New("event plan status precondition not met")

	// ErrDuplicateAction is returned when an authority repeats a decision
	// that is already on file
	ErrDuplicateAction = errors.New("decision already on file for this role")

	// ErrValidation is returned for malformed action requests
	ErrValidation = errors.New("invalid action request")

	// ErrPersistence is returned when a repository read or write fails
	ErrPersistence = errors.New("persistence failure")

	// ErrIncompleteApprovals is the sentinel wrapped by IncompleteApprovalsError
	ErrIncompleteApprovals = errors.New("required approvals incomplete")
)

// IncompleteApprovalsError reports which review-board authorities have no
// approval letter on file at final-approval time.
type IncompleteApprovalsError struct {
	Missing []string
}

func (e *IncompleteApprovalsError) Error() string {
	return fmt.Sprintf("required approvals incomplete: missing %s", strings.Join(e.Missing, ", "))
}

// Unwrap allows errors.Is(err, ErrIncompleteApprovals)
func (e *IncompleteApprovalsError) Unwrap() error {
	return ErrIncompleteApprovals
}

// stateConflictError builds an ErrStateConflict identifying actual vs expected status
func stateConflictError(planID int64, actual string, expected []string) error {
	return fmt.Errorf("%w: plan %d is %s, expected %s", ErrStateConflict, planID, actual, strings.Join(expected, " or "))
}
