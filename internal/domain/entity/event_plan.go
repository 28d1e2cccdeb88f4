package entity

import "time"

// EventPlan represents an organizer's proposed event awaiting institutional approval
type EventPlan struct {
	ID              int64      `json:"id"`
	OrganizerUserID int64      `json:"organizer_user_id"`
	Title           string     `json:"title"`
	Type            string     `json:"type"`
	OrganizerName   string     `json:"organizer_name"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	Participants    int        `json:"participants"`
	Status          string     `json:"status"`
	CurrentStage    int        `json:"current_stage"`
	Remarks         string     `json:"remarks"`
	Facilities      string     `json:"facilities"`
	Documents       string     `json:"documents"`
	ApprovalDocs    string     `json:"approval_documents"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsDecided reports whether the plan has reached a terminal status.
func (p *EventPlan) IsDecided() bool {
	return p.Status == PlanStatusApproved || p.Status == PlanStatusRejected
}
