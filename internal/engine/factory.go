package engine

import (
	"github.com/campusflow/event-approval/internal/domain/workflow"
)

// BuildEventPlanStateMachine creates a state machine configured for the
// event plan approval workflow. finalApproveGuard carries the review-board
// aggregation check; a nil guard leaves final approval unguarded, which is
// only appropriate for transitions that cannot fire it.
func BuildEventPlanStateMachine(initialState workflow.State, finalApproveGuard workflow.GuardFunc) workflow.StateMachine {
	builder := workflow.NewBuilder()

	// SUBMITTED state transitions
	builder.Configure(workflow.StateSubmitted).
		Permit(workflow.TriggerForward, workflow.StateForwarded).
		Permit(workflow.TriggerReject, workflow.StateRejected).
		Permit(workflow.TriggerFinalReject, workflow.StateRejected).
		PermitIf(workflow.TriggerFinalApprove, workflow.StateApproved, finalApproveGuard)

	// FORWARDED_TO_SERVICE_PROVIDER state transitions: only the veto remains
	builder.Configure(workflow.StateForwarded).
		Permit(workflow.TriggerReject, workflow.StateRejected)

	// APPROVED and REJECTED are terminal states - no outgoing transitions

	return builder.Build(initialState)
}
