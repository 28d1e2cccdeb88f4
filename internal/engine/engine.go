package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"go.uber.org/zap"
)

// EventPlanRepository defines the persistence operations the engine needs
// for event plans. CompareAndSetStatus is the per-plan serialization point:
// it must only update the row when the stored status still equals expected.
type EventPlanRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.EventPlan, error)
	CompareAndSetStatus(ctx context.Context, id int64, expected, next string) (bool, error)
	SetStage(ctx context.Context, id int64, stage int) error
	AppendRemarks(ctx context.Context, id int64, remark string) error
}

// LetterStore defines the persistence operations for signed letters
type LetterStore interface {
	Create(ctx context.Context, letter *entity.SignedLetter) error
	HasLetter(ctx context.Context, planID int64, fromRole, letterType string) (bool, error)
	ApprovalsOnFile(ctx context.Context, planID int64, roles []string) (map[string]bool, error)
}

// HistoryStore records the audit trail of workflow actions
type HistoryStore interface {
	Create(ctx context.Context, h *entity.ApprovalHistory) error
}

// Transition describes a completed workflow action for notification fan-out
type Transition struct {
	Plan           *entity.EventPlan
	ActorUserID    int64
	ActorRole      string
	Action         string
	PreviousStatus string
	NewStatus      string
	Comment        string
}

// Notifier receives transition outcomes. Implementations are best-effort;
// the engine never fails an action because notification delivery failed.
type Notifier interface {
	PlanTransition(ctx context.Context, t *Transition)
}

// ActionRequest is one authenticated workflow action against an event plan
type ActionRequest struct {
	PlanID        int64
	ActorUserID   int64
	ActorRole     string
	Action        string
	Comment       string
	SignatureData string
	FilePath      string
	FileName      string
}

// ActionResult reports the outcome of a successful workflow action
type ActionResult struct {
	PlanID         int64  `json:"plan_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	Stage          int    `json:"stage"`
	LettersCreated int    `json:"letters_created,omitempty"`
	Message        string `json:"message"`
}

// Engine is the multi-party approval workflow engine. It owns the transition
// rules in rules.go and is the only component allowed to mutate an event
// plan's status.
type Engine struct {
	plans    EventPlanRepository
	letters  LetterStore
	history  HistoryStore
	notifier Notifier
	logger   *zap.Logger
}

// New creates a new workflow engine
func New(
	plans EventPlanRepository,
	letters LetterStore,
	history HistoryStore,
	notifier Notifier,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		plans:    plans,
		letters:  letters,
		history:  history,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute validates and applies one workflow action. All engine-detected
// failures are returned as typed errors from errors.go; side effects that
// follow a committed status change (history, notifications) are logged on
// failure but never reported as the action's failure.
func (e *Engine) Execute(ctx context.Context, req *ActionRequest) (*ActionResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	rule, ok := transitionRules[ruleKey{role: req.ActorRole, action: req.Action}]
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot perform %s", ErrForbidden, req.ActorRole, req.Action)
	}

	plan, err := e.plans.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading plan %d: %v", ErrPersistence, req.PlanID, err)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: id %d", ErrPlanNotFound, req.PlanID)
	}

	if !rule.allows(plan.Status) {
		return nil, stateConflictError(plan.ID, plan.Status, rule.fromStatuses)
	}

	previousStatus := plan.Status
	result, err := rule.apply(ctx, e, plan, req)
	if err != nil {
		return nil, err
	}

	e.recordHistory(ctx, plan, req, previousStatus, result.NewStatus)

	e.notifier.PlanTransition(ctx, &Transition{
		Plan:           plan,
		ActorUserID:    req.ActorUserID,
		ActorRole:      req.ActorRole,
		Action:         req.Action,
		PreviousStatus: previousStatus,
		NewStatus:      result.NewStatus,
		Comment:        req.Comment,
	})

	e.logger.Info("Workflow action applied",
		zap.Int64("plan_id", plan.ID),
		zap.String("role", req.ActorRole),
		zap.String("action", req.Action),
		zap.String("previous_status", previousStatus),
		zap.String("new_status", result.NewStatus))

	return result, nil
}

// validate checks the request shape before any repository access
func (r *ActionRequest) validate() error {
	if r == nil {
		return fmt.Errorf("%w: request is nil", ErrValidation)
	}
	if r.PlanID <= 0 {
		return fmt.Errorf("%w: event_plan_id must be a positive integer", ErrValidation)
	}
	if r.ActorUserID <= 0 {
		return fmt.Errorf("%w: actor user id is required", ErrValidation)
	}
	if r.ActorRole == "" {
		return fmt.Errorf("%w: actor role is required", ErrValidation)
	}
	switch r.Action {
	case entity.ActionApprove, entity.ActionReject, entity.ActionForward,
		entity.ActionSendLetters, entity.ActionFinalApprove, entity.ActionFinalReject:
		return nil
	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, r.Action)
	}
}

// recordHistory appends an audit trail row. Failures are logged only: the
// status change has already committed and must not be reported as failed.
func (e *Engine) recordHistory(ctx context.Context, plan *entity.EventPlan, req *ActionRequest, previous, next string) {
	h := &entity.ApprovalHistory{
		EventPlanID:    plan.ID,
		ActorUserID:    req.ActorUserID,
		ActorRole:      req.ActorRole,
		Action:         req.Action,
		PreviousStatus: previous,
		NewStatus:      next,
		Comment:        req.Comment,
		Timestamp:      time.Now(),
	}
	if err := e.history.Create(ctx, h); err != nil {
		e.logger.Error("Failed to record approval history",
			zap.Int64("plan_id", plan.ID),
			zap.String("action", req.Action),
			zap.Error(err))
	}
}
