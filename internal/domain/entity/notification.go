package entity

import "time"

// Notification represents an in-app notification record delivered to one user.
// Status only ever moves UNREAD -> READ.
type Notification struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	EventPlanID int64      `json:"event_plan_id,omitempty"`
	Metadata    string     `json:"metadata,omitempty"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
