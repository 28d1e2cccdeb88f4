package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	// TriggerForward moves a submitted plan to the service provider's desk.
	TriggerForward Trigger = "FORWARD"

	// TriggerReject is fired for any authority's unilateral veto.
	TriggerReject Trigger = "REJECT"

	// TriggerFinalApprove is the super-admin's final approval; it is guarded
	// by the review-board aggregation check.
	TriggerFinalApprove Trigger = "FINAL_APPROVE"

	// TriggerFinalReject is the super-admin's final rejection.
	TriggerFinalReject Trigger = "FINAL_REJECT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
