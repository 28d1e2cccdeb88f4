package entity

// Status constants for EventPlan
const (
	PlanStatusSubmitted = "SUBMITTED"
	PlanStatusForwarded = "FORWARDED_TO_SERVICE_PROVIDER"
	PlanStatusApproved  = "APPROVED"
	PlanStatusRejected  = "REJECTED"
)

// Stage constants for EventPlan.CurrentStage. The stage is an auxiliary
// progress counter and only ever increases.
const (
	StageAwaitingLetters = 1
	StageLettersSent     = 2
)

// Authority role constants
const (
	RoleOrganizer       = "ORGANIZER"
	RoleSuperAdmin      = "SUPER_ADMIN"
	RoleViceChancellor  = "VICE_CHANCELLOR"
	RoleWarden          = "WARDEN"
	RoleStudentUnion    = "STUDENT_UNION"
	RoleAdministration  = "ADMINISTRATION"
	RoleServiceProvider = "SERVICE_PROVIDER"
)

// ReviewBoardRoles are the four authorities whose approval letters must all
// be on file before the super-admin may finally approve a plan.
var ReviewBoardRoles = []string{
	RoleViceChancellor,
	RoleWarden,
	RoleAdministration,
	RoleStudentUnion,
}

// Letter type constants for SignedLetter
const (
	LetterTypeApproval      = "APPROVAL"
	LetterTypeRejection     = "REJECTION"
	LetterTypeReviewRequest = "REVIEW_REQUEST"
)

// Letter status constants
const (
	LetterStatusPending = "PENDING"
	LetterStatusSent    = "SENT"
)

// Notification status constants
const (
	NotificationStatusUnread = "UNREAD"
	NotificationStatusRead   = "READ"
)

// Notification type constants
const (
	NotificationTypeActionConfirmed = "ACTION_CONFIRMED"
	NotificationTypeReviewRequested = "REVIEW_REQUESTED"
	NotificationTypeStatusChanged   = "STATUS_CHANGED"
)

// Workflow action constants
const (
	ActionApprove      = "APPROVE"
	ActionReject       = "REJECT"
	ActionForward      = "FORWARD"
	ActionSendLetters  = "SEND_LETTERS"
	ActionFinalApprove = "FINAL_APPROVE"
	ActionFinalReject  = "FINAL_REJECT"
)

// RoleDisplayName maps a role constant to its human readable form used in
// letters and notification messages.
var RoleDisplayName = map[string]string{
	RoleOrganizer:       "Organizer",
	RoleSuperAdmin:      "Super Admin",
	RoleViceChancellor:  "Vice Chancellor",
	RoleWarden:          "Warden",
	RoleStudentUnion:    "Student Union",
	RoleAdministration:  "Administration",
	RoleServiceProvider: "Service Provider",
}
