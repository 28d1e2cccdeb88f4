package entity

import "time"

// ApprovalHistory represents the audit trail of an event plan's workflow
type ApprovalHistory struct {
	ID             int64     `json:"id"`
	EventPlanID    int64     `json:"event_plan_id"`
	ActorUserID    int64     `json:"actor_user_id"`
	ActorRole      string    `json:"actor_role"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Comment        string    `json:"comment"`
	Timestamp      time.Time `json:"timestamp"`
}
