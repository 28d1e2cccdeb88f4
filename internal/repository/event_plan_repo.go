package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"go.uber.org/zap"
)

// EventPlanRepository handles event plan database operations
type EventPlanRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventPlanRepository creates a new event plan repository
func NewEventPlanRepository(db *sql.DB, logger *zap.Logger) *EventPlanRepository {
	return &EventPlanRepository{
		db:     db,
		logger: logger,
	}
}

const eventPlanColumns = `
	id, organizer_user_id, title, type, organizer_name, event_date, event_time,
	participants, status, current_stage, remarks, facilities, documents,
	approval_documents, decided_at, created_at, updated_at
`

// Create inserts a new event plan in SUBMITTED status at stage 1
func (r *EventPlanRepository) Create(ctx context.Context, plan *entity.EventPlan) error {
	query := `
		INSERT INTO event_plans (
			organizer_user_id, title, type, organizer_name, event_date, event_time,
			participants, status, current_stage, remarks, facilities, documents,
			approval_documents, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	now := time.Now()
	plan.Status = entity.PlanStatusSubmitted
	plan.CurrentStage = entity.StageAwaitingLetters
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.db.ExecContext(ctx, query,
		plan.OrganizerUserID,
		plan.Title,
		plan.Type,
		plan.OrganizerName,
		plan.Date,
		plan.Time,
		plan.Participants,
		plan.Status,
		plan.CurrentStage,
		plan.Remarks,
		plan.Facilities,
		plan.Documents,
		plan.ApprovalDocs,
		plan.CreatedAt,
		plan.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create event plan",
			zap.Int64("organizer_user_id", plan.OrganizerUserID),
			zap.Error(err))
		return fmt.Errorf("failed to create event plan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	plan.ID = id
	return nil
}

// GetByID retrieves an event plan by ID. Returns (nil, nil) when absent.
func (r *EventPlanRepository) GetByID(ctx context.Context, id int64) (*entity.EventPlan, error) {
	query := `SELECT ` + eventPlanColumns + ` FROM event_plans WHERE id = ?`

	plan, err := r.scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get event plan",
			zap.Int64("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get event plan: %w", err)
	}

	return plan, nil
}

// ListByOrganizer retrieves an organizer's plans, newest first
func (r *EventPlanRepository) ListByOrganizer(ctx context.Context, organizerUserID int64, limit, offset int) ([]*entity.EventPlan, error) {
	query := `SELECT ` + eventPlanColumns + `
		FROM event_plans
		WHERE organizer_user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, organizerUserID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list event plans",
			zap.Int64("organizer_user_id", organizerUserID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list event plans: %w", err)
	}
	defer rows.Close()

	var plans []*entity.EventPlan
	for rows.Next() {
		plan, err := r.scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event plan: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, rows.Err()
}

// CompareAndSetStatus atomically moves the plan from expected to next
// status. Returns false when the stored status no longer matches expected,
// which is how concurrent finalizers are reduced to a single winner.
func (r *EventPlanRepository) CompareAndSetStatus(ctx context.Context, id int64, expected, next string) (bool, error) {
	query := `
		UPDATE event_plans
		SET status = ?, decided_at = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`

	now := time.Now()
	var decidedAt interface{}
	if next == entity.PlanStatusApproved || next == entity.PlanStatusRejected {
		decidedAt = now
	}

	result, err := r.db.ExecContext(ctx, query, next, decidedAt, now, id, expected)
	if err != nil {
		r.logger.Error("Failed to update event plan status",
			zap.Int64("id", id),
			zap.String("expected", expected),
			zap.String("next", next),
			zap.Error(err))
		return false, fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected == 1, nil
}

// SetStage advances the auxiliary stage counter. The WHERE clause keeps the
// counter monotonic: a lower or equal stage never overwrites a higher one.
func (r *EventPlanRepository) SetStage(ctx context.Context, id int64, stage int) error {
	query := `
		UPDATE event_plans
		SET current_stage = ?, updated_at = ?
		WHERE id = ? AND current_stage < ?
	`

	if _, err := r.db.ExecContext(ctx, query, stage, time.Now(), id, stage); err != nil {
		r.logger.Error("Failed to set event plan stage",
			zap.Int64("id", id),
			zap.Int("stage", stage),
			zap.Error(err))
		return fmt.Errorf("failed to set stage: %w", err)
	}

	return nil
}

// AppendRemarks appends one line to the plan's append-only remarks narrative
func (r *EventPlanRepository) AppendRemarks(ctx context.Context, id int64, remark string) error {
	query := `
		UPDATE event_plans
		SET remarks = CASE WHEN remarks = '' THEN ? ELSE remarks || char(10) || ? END,
		    updated_at = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, remark, remark, time.Now(), id); err != nil {
		r.logger.Error("Failed to append remarks",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("failed to append remarks: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *EventPlanRepository) scanPlan(row rowScanner) (*entity.EventPlan, error) {
	var plan entity.EventPlan
	var decidedAt sql.NullTime

	err := row.Scan(
		&plan.ID,
		&plan.OrganizerUserID,
		&plan.Title,
		&plan.Type,
		&plan.OrganizerName,
		&plan.Date,
		&plan.Time,
		&plan.Participants,
		&plan.Status,
		&plan.CurrentStage,
		&plan.Remarks,
		&plan.Facilities,
		&plan.Documents,
		&plan.ApprovalDocs,
		&decidedAt,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if decidedAt.Valid {
		plan.DecidedAt = &decidedAt.Time
	}

	return &plan, nil
}
