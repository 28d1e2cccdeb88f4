package entity

import "time"

// SignedLetter is the persisted record of one authority's decision on an
// event plan. The engine treats the presence of an APPROVAL letter for a
// role as that role's vote; letters are never mutated after creation except
// the SENT status bump.
type SignedLetter struct {
	ID            int64     `json:"id"`
	EventPlanID   int64     `json:"event_plan_id"`
	ReferenceNo   string    `json:"reference_no"`
	FromRole      string    `json:"from_role"`
	ToRole        string    `json:"to_role"`
	LetterType    string    `json:"letter_type"`
	LetterContent string    `json:"letter_content"`
	SignatureData string    `json:"signature_data,omitempty"`
	Status        string    `json:"status"`
	FilePath      string    `json:"file_path,omitempty"`
	FileName      string    `json:"file_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
