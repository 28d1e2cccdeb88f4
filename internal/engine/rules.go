package engine

import (
	"context"
	"fmt"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/campusflow/event-approval/internal/domain/workflow"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ruleKey identifies one row of the transition table
type ruleKey struct {
	role   string
	action string
}

// transitionRule is one parametrized row of the transition table: which
// statuses the action may start from and how it is applied. The per-role
// approve/reject handlers are shared; the role only selects the row.
type transitionRule struct {
	fromStatuses []string
	apply        func(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error)
}

func (r *transitionRule) allows(status string) bool {
	for _, s := range r.fromStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var transitionRules = buildTransitionRules()

func buildTransitionRules() map[ruleKey]*transitionRule {
	rules := make(map[ruleKey]*transitionRule)

	submittedOnly := []string{entity.PlanStatusSubmitted}
	submittedOrForwarded := []string{entity.PlanStatusSubmitted, entity.PlanStatusForwarded}

	// The four review-board authorities share the same approve and reject
	// behavior; an approval is advisory until the super-admin aggregates,
	// a rejection is a unilateral veto.
	for _, role := range entity.ReviewBoardRoles {
		rules[ruleKey{role, entity.ActionApprove}] = &transitionRule{submittedOnly, applyAuthorityApprove}
		rules[ruleKey{role, entity.ActionReject}] = &transitionRule{submittedOnly, applyAuthorityReject}
	}

	// The service provider may also act after the plan has been forwarded.
	// Its approval never changes plan status.
	rules[ruleKey{entity.RoleServiceProvider, entity.ActionApprove}] = &transitionRule{submittedOrForwarded, applyAuthorityApprove}
	rules[ruleKey{entity.RoleServiceProvider, entity.ActionReject}] = &transitionRule{submittedOrForwarded, applyAuthorityReject}

	rules[ruleKey{entity.RoleSuperAdmin, entity.ActionSendLetters}] = &transitionRule{submittedOnly, applySendLetters}
	rules[ruleKey{entity.RoleSuperAdmin, entity.ActionForward}] = &transitionRule{submittedOnly, applyForward}
	rules[ruleKey{entity.RoleSuperAdmin, entity.ActionFinalApprove}] = &transitionRule{submittedOnly, applyFinalApprove}
	rules[ruleKey{entity.RoleSuperAdmin, entity.ActionFinalReject}] = &transitionRule{submittedOnly, applyFinalReject}

	return rules
}

// applyAuthorityApprove records one authority's approval letter. Plan status
// is untouched; the letter is the vote the final-approval guard counts.
// Repeating an approval is rejected as a duplicate action.
func applyAuthorityApprove(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error) {
	exists, err := e.letters.HasLetter(ctx, plan.ID, req.ActorRole, entity.LetterTypeApproval)
	if err != nil {
		return nil, fmt.Errorf("%w: checking letters for plan %d: %v", ErrPersistence, plan.ID, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s already approved plan %d", ErrDuplicateAction, req.ActorRole, plan.ID)
	}

	if err := e.createLetter(ctx, plan, req, entity.LetterTypeApproval, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}

	return &ActionResult{
		PlanID:         plan.ID,
		PreviousStatus: plan.Status,
		NewStatus:      plan.Status,
		Stage:          plan.CurrentStage,
		LettersCreated: 1,
		Message:        fmt.Sprintf("%s approval recorded for plan %d", entity.RoleDisplayName[req.ActorRole], plan.ID),
	}, nil
}

// applyAuthorityReject is the unilateral veto: any single authority's
// rejection moves the plan to REJECTED regardless of approvals on file.
func applyAuthorityReject(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error) {
	previous := plan.Status
	if err := e.fireAndSet(ctx, plan, workflow.TriggerReject, nil); err != nil {
		return nil, err
	}

	e.appendRejectionRemark(ctx, plan, req)

	if err := e.createLetter(ctx, plan, req, entity.LetterTypeRejection, entity.RoleSuperAdmin); err != nil {
		return nil, err
	}

	return &ActionResult{
		PlanID:         plan.ID,
		PreviousStatus: previous,
		NewStatus:      plan.Status,
		Stage:          plan.CurrentStage,
		LettersCreated: 1,
		Message:        fmt.Sprintf("Plan %d rejected by %s", plan.ID, entity.RoleDisplayName[req.ActorRole]),
	}, nil
}

// applySendLetters dispatches one review-request letter to each of the four
// review-board authorities and advances the plan to stage 2.
func applySendLetters(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error) {
	if plan.CurrentStage >= entity.StageLettersSent {
		return nil, fmt.Errorf("%w: letters already sent for plan %d", ErrDuplicateAction, plan.ID)
	}

	created := 0
	for _, role := range entity.ReviewBoardRoles {
		if err := e.createLetter(ctx, plan, req, entity.LetterTypeReviewRequest, role); err != nil {
			return nil, err
		}
		created++
	}

	if err := e.plans.SetStage(ctx, plan.ID, entity.StageLettersSent); err != nil {
		return nil, fmt.Errorf("%w: advancing stage for plan %d: %v", ErrPersistence, plan.ID, err)
	}
	plan.CurrentStage = entity.StageLettersSent

	return &ActionResult{
		PlanID:         plan.ID,
		PreviousStatus: plan.Status,
		NewStatus:      plan.Status,
		Stage:          plan.CurrentStage,
		LettersCreated: created,
		Message:        fmt.Sprintf("Review letters sent for plan %d", plan.ID),
	}, nil
}

// applyForward hands the plan to the service provider
func applyForward(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error) {
	previous := plan.Status
	if err := e.fireAndSet(ctx, plan, workflow.TriggerForward, nil); err != nil {
		return nil, err
	}

	return &ActionResult{
		PlanID:         plan.ID,
		PreviousStatus: previous,
		NewStatus:      plan.Status,
		Stage:          plan.CurrentStage,
		Message:        fmt.Sprintf("Plan %d forwarded to service provider", plan.ID),
	}, nil
}

// applyFinalApprove re-queries the letter store at decision time: the four
// review-board approvals must all be on file. Cached or caller-supplied
// state is never trusted here.
func applyFinalApprove(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error) {
	onFile, err := e.letters.ApprovalsOnFile(ctx, plan.ID, entity.ReviewBoardRoles)
	if err != nil {
		return nil, fmt.Errorf("%w: querying approvals for plan %d: %v", ErrPersistence, plan.ID, err)
	}

	var missing []string
	for _, role := range entity.ReviewBoardRoles {
		if !onFile[role] {
			missing = append(missing, entity.RoleDisplayName[role])
		}
	}
	if len(missing) > 0 {
		e.logger.Warn("Final approval blocked by missing letters",
			zap.Int64("plan_id", plan.ID),
			zap.Strings("missing", missing))
		return nil, &IncompleteApprovalsError{Missing: missing}
	}

	previous := plan.Status
	guard := func(context.Context) bool { return len(missing) == 0 }
	if err := e.fireAndSet(ctx, plan, workflow.TriggerFinalApprove, guard); err != nil {
		return nil, err
	}

	return &ActionResult{
		PlanID:         plan.ID,
		PreviousStatus: previous,
		NewStatus:      plan.Status,
		Stage:          plan.CurrentStage,
		Message:        fmt.Sprintf("Plan %d finally approved", plan.ID),
	}, nil
}

// applyFinalReject is the super-admin's terminal rejection
func applyFinalReject(ctx context.Context, e *Engine, plan *entity.EventPlan, req *ActionRequest) (*ActionResult, error) {
	previous := plan.Status
	if err := e.fireAndSet(ctx, plan, workflow.TriggerFinalReject, nil); err != nil {
		return nil, err
	}

	e.appendRejectionRemark(ctx, plan, req)

	return &ActionResult{
		PlanID:         plan.ID,
		PreviousStatus: previous,
		NewStatus:      plan.Status,
		Stage:          plan.CurrentStage,
		Message:        fmt.Sprintf("Plan %d finally rejected", plan.ID),
	}, nil
}

// fireAndSet validates the transition through the domain state machine and
// then commits it with a compare-and-set on the stored status. The CAS is
// what makes two concurrent finalizers resolve to exactly one winner.
func (e *Engine) fireAndSet(ctx context.Context, plan *entity.EventPlan, trigger workflow.Trigger, guard workflow.GuardFunc) error {
	machine := BuildEventPlanStateMachine(workflow.State(plan.Status), guard)
	if err := machine.Fire(ctx, trigger); err != nil {
		return fmt.Errorf("%w: %v", ErrStateConflict, err)
	}

	next := machine.State().String()
	ok, err := e.plans.CompareAndSetStatus(ctx, plan.ID, plan.Status, next)
	if err != nil {
		return fmt.Errorf("%w: updating status for plan %d: %v", ErrPersistence, plan.ID, err)
	}
	if !ok {
		return fmt.Errorf("%w: plan %d status changed concurrently, expected %s", ErrStateConflict, plan.ID, plan.Status)
	}

	plan.Status = next
	return nil
}

// createLetter persists one signed letter for the acting authority
func (e *Engine) createLetter(ctx context.Context, plan *entity.EventPlan, req *ActionRequest, letterType, toRole string) error {
	letter := &entity.SignedLetter{
		EventPlanID:   plan.ID,
		ReferenceNo:   uuid.NewString(),
		FromRole:      req.ActorRole,
		ToRole:        toRole,
		LetterType:    letterType,
		LetterContent: buildLetterContent(plan, req.ActorRole, letterType, req.Comment),
		SignatureData: req.SignatureData,
		Status:        entity.LetterStatusPending,
		FilePath:      req.FilePath,
		FileName:      req.FileName,
	}
	if err := e.letters.Create(ctx, letter); err != nil {
		return fmt.Errorf("%w: creating %s letter for plan %d: %v", ErrPersistence, letterType, plan.ID, err)
	}
	return nil
}

// appendRejectionRemark appends the rejection reason to the plan's
// append-only remarks narrative. The status change has already committed,
// so a failure here is logged rather than propagated.
func (e *Engine) appendRejectionRemark(ctx context.Context, plan *entity.EventPlan, req *ActionRequest) {
	if req.Comment == "" {
		return
	}
	remark := fmt.Sprintf("%s: %s", entity.RoleDisplayName[req.ActorRole], req.Comment)
	if err := e.plans.AppendRemarks(ctx, plan.ID, remark); err != nil {
		e.logger.Error("Failed to append rejection remark",
			zap.Int64("plan_id", plan.ID),
			zap.Error(err))
	}
}

func buildLetterContent(plan *entity.EventPlan, fromRole, letterType, comment string) string {
	display := entity.RoleDisplayName[fromRole]
	switch letterType {
	case entity.LetterTypeApproval:
		return fmt.Sprintf("The %s approves the event plan %q (#%d) scheduled for %s.", display, plan.Title, plan.ID, plan.Date)
	case entity.LetterTypeRejection:
		if comment != "" {
			return fmt.Sprintf("The %s rejects the event plan %q (#%d). Reason: %s", display, plan.Title, plan.ID, comment)
		}
		return fmt.Sprintf("The %s rejects the event plan %q (#%d).", display, plan.Title, plan.ID)
	case entity.LetterTypeReviewRequest:
		return fmt.Sprintf("The %s requests your review of the event plan %q (#%d) scheduled for %s.", display, plan.Title, plan.ID, plan.Date)
	default:
		return ""
	}
}
