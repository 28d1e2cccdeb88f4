package notify

import (
	"context"
	"fmt"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/campusflow/event-approval/internal/engine"
	"go.uber.org/zap"
)

// Sink records or delivers one notification. Implementations are
// best-effort; errors are logged by the dispatcher, never raised.
type Sink interface {
	Notify(ctx context.Context, n *entity.Notification) error
}

// Directory resolves which user ids hold a given role. User management is
// owned by another system; this service only needs the role membership.
type Directory interface {
	UsersByRole(role string) []int64
}

// Dispatcher translates a workflow transition into the set of notifications
// to hand to each sink. It implements engine.Notifier.
type Dispatcher struct {
	directory Directory
	sinks     []Sink
	logger    *zap.Logger
}

// NewDispatcher creates a new notification dispatcher
func NewDispatcher(directory Directory, logger *zap.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		directory: directory,
		sinks:     sinks,
		logger:    logger,
	}
}

// PlanTransition fans a transition out to every affected party. A failing
// sink never converts a committed transition into a failure.
func (d *Dispatcher) PlanTransition(ctx context.Context, t *engine.Transition) {
	for _, n := range d.FanOut(t) {
		for _, sink := range d.sinks {
			if err := sink.Notify(ctx, n); err != nil {
				d.logger.Error("Notification delivery failed",
					zap.Int64("user_id", n.UserID),
					zap.Int64("plan_id", n.EventPlanID),
					zap.String("type", n.Type),
					zap.Error(err))
			}
		}
	}
}

// FanOut computes the notification set for one transition: the organizer,
// the acting authority (confirmation), the super-admins when another
// authority acted, and the four review-board authorities on send-letters.
func (d *Dispatcher) FanOut(t *engine.Transition) []*entity.Notification {
	plan := t.Plan
	actorDisplay := entity.RoleDisplayName[t.ActorRole]

	var out []*entity.Notification

	organizerType := entity.NotificationTypeStatusChanged
	organizerMsg := fmt.Sprintf("%s performed %s on your event plan %q.", actorDisplay, t.Action, plan.Title)
	if t.PreviousStatus != t.NewStatus {
		organizerMsg = fmt.Sprintf("Your event plan %q moved from %s to %s after %s by the %s.",
			plan.Title, t.PreviousStatus, t.NewStatus, t.Action, actorDisplay)
	}
	out = append(out, d.notification(plan, plan.OrganizerUserID, "Event plan update", organizerMsg, organizerType))

	out = append(out, d.notification(plan, t.ActorUserID, "Action recorded",
		fmt.Sprintf("Your %s on event plan %q (#%d) has been recorded.", t.Action, plan.Title, plan.ID),
		entity.NotificationTypeActionConfirmed))

	if t.ActorRole != entity.RoleSuperAdmin {
		for _, adminID := range d.directory.UsersByRole(entity.RoleSuperAdmin) {
			out = append(out, d.notification(plan, adminID, "Authority action",
				fmt.Sprintf("%s performed %s on event plan %q (#%d).", actorDisplay, t.Action, plan.Title, plan.ID),
				entity.NotificationTypeStatusChanged))
		}
	}

	if t.Action == entity.ActionSendLetters {
		for _, role := range entity.ReviewBoardRoles {
			for _, userID := range d.directory.UsersByRole(role) {
				out = append(out, d.notification(plan, userID, "Review requested",
					fmt.Sprintf("Your review is requested for event plan %q (#%d) scheduled for %s.", plan.Title, plan.ID, plan.Date),
					entity.NotificationTypeReviewRequested))
			}
		}
	}

	return out
}

func (d *Dispatcher) notification(plan *entity.EventPlan, userID int64, title, message, ntype string) *entity.Notification {
	return &entity.Notification{
		UserID:      userID,
		Title:       title,
		Message:     message,
		Type:        ntype,
		Status:      entity.NotificationStatusUnread,
		EventPlanID: plan.ID,
	}
}

// StaticDirectory is a config-backed role membership table
type StaticDirectory struct {
	members map[string][]int64
}

// NewStaticDirectory creates a directory from a role -> user ids map
func NewStaticDirectory(members map[string][]int64) *StaticDirectory {
	return &StaticDirectory{members: members}
}

// UsersByRole returns the user ids holding the role
func (s *StaticDirectory) UsersByRole(role string) []int64 {
	return s.members[role]
}
