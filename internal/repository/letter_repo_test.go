package repository

import (
	"context"
	"testing"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// seedPlans inserts n plans and returns their ids; signed_letters carries a
// foreign key to event_plans.
func seedPlans(t *testing.T, db *EventPlanRepository, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		plan := &entity.EventPlan{
			OrganizerUserID: 42,
			Title:           "Tech Fest",
			Date:            "2026-10-01",
		}
		require.NoError(t, db.Create(context.Background(), plan))
		ids = append(ids, plan.ID)
	}
	return ids
}

func createTestLetter(t *testing.T, repo *LetterRepository, planID int64, fromRole, letterType string) *entity.SignedLetter {
	t.Helper()

	letter := &entity.SignedLetter{
		EventPlanID:   planID,
		ReferenceNo:   uuid.NewString(),
		FromRole:      fromRole,
		ToRole:        entity.RoleSuperAdmin,
		LetterType:    letterType,
		LetterContent: "content",
	}
	require.NoError(t, repo.Create(context.Background(), letter))
	return letter
}

func TestLetterRepository_CreateDefaultsToPending(t *testing.T) {
	db := newTestDB(t)
	plans := NewEventPlanRepository(db.DB, zap.NewNop())
	repo := NewLetterRepository(db.DB, zap.NewNop())
	ids := seedPlans(t, plans, 1)

	letter := createTestLetter(t, repo, ids[0], entity.RoleWarden, entity.LetterTypeApproval)
	require.NotZero(t, letter.ID)
	assert.Equal(t, entity.LetterStatusPending, letter.Status)
}

func TestLetterRepository_HasLetter(t *testing.T) {
	db := newTestDB(t)
	plans := NewEventPlanRepository(db.DB, zap.NewNop())
	repo := NewLetterRepository(db.DB, zap.NewNop())
	ids := seedPlans(t, plans, 2)

	createTestLetter(t, repo, ids[0], entity.RoleWarden, entity.LetterTypeApproval)

	has, err := repo.HasLetter(context.Background(), ids[0], entity.RoleWarden, entity.LetterTypeApproval)
	require.NoError(t, err)
	assert.True(t, has)

	// Different role, type, or plan does not match
	has, err = repo.HasLetter(context.Background(), ids[0], entity.RoleViceChancellor, entity.LetterTypeApproval)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = repo.HasLetter(context.Background(), ids[0], entity.RoleWarden, entity.LetterTypeRejection)
	require.NoError(t, err)
	assert.False(t, has)

	has, err = repo.HasLetter(context.Background(), ids[1], entity.RoleWarden, entity.LetterTypeApproval)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLetterRepository_ApprovalsOnFile(t *testing.T) {
	db := newTestDB(t)
	plans := NewEventPlanRepository(db.DB, zap.NewNop())
	repo := NewLetterRepository(db.DB, zap.NewNop())
	ids := seedPlans(t, plans, 2)

	createTestLetter(t, repo, ids[0], entity.RoleWarden, entity.LetterTypeApproval)
	createTestLetter(t, repo, ids[0], entity.RoleViceChancellor, entity.LetterTypeApproval)
	// A rejection letter is not a vote
	createTestLetter(t, repo, ids[0], entity.RoleStudentUnion, entity.LetterTypeRejection)
	// Another plan's approval does not count
	createTestLetter(t, repo, ids[1], entity.RoleAdministration, entity.LetterTypeApproval)

	onFile, err := repo.ApprovalsOnFile(context.Background(), ids[0], entity.ReviewBoardRoles)
	require.NoError(t, err)

	assert.True(t, onFile[entity.RoleWarden])
	assert.True(t, onFile[entity.RoleViceChancellor])
	assert.False(t, onFile[entity.RoleStudentUnion])
	assert.False(t, onFile[entity.RoleAdministration])
}

func TestLetterRepository_ApprovalsOnFile_EmptyRoles(t *testing.T) {
	db := newTestDB(t)
	repo := NewLetterRepository(db.DB, zap.NewNop())

	onFile, err := repo.ApprovalsOnFile(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, onFile)
}

func TestLetterRepository_ListByPlan(t *testing.T) {
	db := newTestDB(t)
	plans := NewEventPlanRepository(db.DB, zap.NewNop())
	repo := NewLetterRepository(db.DB, zap.NewNop())
	ids := seedPlans(t, plans, 2)

	createTestLetter(t, repo, ids[0], entity.RoleWarden, entity.LetterTypeApproval)
	createTestLetter(t, repo, ids[0], entity.RoleViceChancellor, entity.LetterTypeApproval)
	createTestLetter(t, repo, ids[1], entity.RoleWarden, entity.LetterTypeApproval)

	letters, err := repo.ListByPlan(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, letters, 2)
	assert.Equal(t, entity.RoleWarden, letters[0].FromRole)
	assert.Equal(t, entity.RoleViceChancellor, letters[1].FromRole)
}

func TestLetterRepository_MarkSent(t *testing.T) {
	db := newTestDB(t)
	plans := NewEventPlanRepository(db.DB, zap.NewNop())
	repo := NewLetterRepository(db.DB, zap.NewNop())
	ids := seedPlans(t, plans, 1)

	letter := createTestLetter(t, repo, ids[0], entity.RoleWarden, entity.LetterTypeApproval)

	require.NoError(t, repo.MarkSent(context.Background(), letter.ID))

	// Already sent
	err := repo.MarkSent(context.Background(), letter.ID)
	assert.Error(t, err)

	// Unknown id
	err = repo.MarkSent(context.Background(), 999)
	assert.Error(t, err)

	letters, err := repo.ListByPlan(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, letters, 1)
	assert.Equal(t, entity.LetterStatusSent, letters[0].Status)
}
