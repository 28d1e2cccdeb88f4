package api

import (
	"context"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/campusflow/event-approval/internal/engine"
	"go.uber.org/zap"
)

// WorkflowService executes workflow actions. Implemented by engine.Engine.
type WorkflowService interface {
	Execute(ctx context.Context, req *engine.ActionRequest) (*engine.ActionResult, error)
}

// PlanStore is the event plan surface the API exposes
type PlanStore interface {
	Create(ctx context.Context, plan *entity.EventPlan) error
	GetByID(ctx context.Context, id int64) (*entity.EventPlan, error)
	ListByOrganizer(ctx context.Context, organizerUserID int64, limit, offset int) ([]*entity.EventPlan, error)
}

// LetterReader is the signed letter surface the API exposes
type LetterReader interface {
	ListByPlan(ctx context.Context, planID int64) ([]*entity.SignedLetter, error)
	MarkSent(ctx context.Context, id int64) error
}

// NotificationReader is the notification inbox surface the API exposes
type NotificationReader interface {
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
}

// HistoryReader exposes the approval audit trail
type HistoryReader interface {
	ListByPlan(ctx context.Context, planID int64) ([]*entity.ApprovalHistory, error)
}

// Handlers bundles the HTTP handlers and their dependencies
type Handlers struct {
	workflow      WorkflowService
	plans         PlanStore
	letters       LetterReader
	notifications NotificationReader
	history       HistoryReader
	logger        *zap.Logger
}

// NewHandlers creates the API handler set
func NewHandlers(
	workflow WorkflowService,
	plans PlanStore,
	letters LetterReader,
	notifications NotificationReader,
	history HistoryReader,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		workflow:      workflow,
		plans:         plans,
		letters:       letters,
		notifications: notifications,
		history:       history,
		logger:        logger,
	}
}
