package repository

import (
	"context"
	"testing"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createTestNotification(t *testing.T, repo *NotificationRepository, userID int64) *entity.Notification {
	t.Helper()

	n := &entity.Notification{
		UserID:  userID,
		Title:   "Review requested",
		Message: "Your review is requested",
		Type:    entity.NotificationTypeReviewRequested,
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestNotificationRepository_CreateDefaultsToUnread(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	n := createTestNotification(t, repo, 3)
	require.NotZero(t, n.ID)
	assert.Equal(t, entity.NotificationStatusUnread, n.Status)
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	createTestNotification(t, repo, 3)
	createTestNotification(t, repo, 3)
	createTestNotification(t, repo, 4)

	notifications, err := repo.ListByUser(context.Background(), 3, false, 10)
	require.NoError(t, err)
	assert.Len(t, notifications, 2)

	notifications, err = repo.ListByUser(context.Background(), 3, false, 1)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestNotificationRepository_MarkReadAndUnreadFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	first := createTestNotification(t, repo, 3)
	createTestNotification(t, repo, 3)

	updated, err := repo.MarkRead(context.Background(), first.ID, 3)
	require.NoError(t, err)
	assert.True(t, updated)

	// Marking again reports no change
	updated, err = repo.MarkRead(context.Background(), first.ID, 3)
	require.NoError(t, err)
	assert.False(t, updated)

	unread, err := repo.ListByUser(context.Background(), 3, true, 10)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.NotEqual(t, first.ID, unread[0].ID)
}

func TestNotificationRepository_MarkRead_WrongUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewNotificationRepository(db.DB, zap.NewNop())

	n := createTestNotification(t, repo, 3)

	// Another user cannot mark someone else's notification read
	updated, err := repo.MarkRead(context.Background(), n.ID, 4)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestHistoryRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	plans := NewEventPlanRepository(db.DB, zap.NewNop())
	repo := NewHistoryRepository(db.DB, zap.NewNop())
	ids := seedPlans(t, plans, 1)

	first := &entity.ApprovalHistory{
		EventPlanID:    ids[0],
		ActorUserID:    3,
		ActorRole:      entity.RoleWarden,
		Action:         entity.ActionApprove,
		PreviousStatus: entity.PlanStatusSubmitted,
		NewStatus:      entity.PlanStatusSubmitted,
	}
	require.NoError(t, repo.Create(context.Background(), first))

	second := &entity.ApprovalHistory{
		EventPlanID:    ids[0],
		ActorUserID:    1,
		ActorRole:      entity.RoleSuperAdmin,
		Action:         entity.ActionFinalApprove,
		PreviousStatus: entity.PlanStatusSubmitted,
		NewStatus:      entity.PlanStatusApproved,
		Comment:        "all approvals on file",
	}
	require.NoError(t, repo.Create(context.Background(), second))

	records, err := repo.ListByPlan(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, entity.ActionApprove, records[0].Action)
	assert.Equal(t, entity.ActionFinalApprove, records[1].Action)
	assert.Equal(t, "all approvals on file", records[1].Comment)
}
