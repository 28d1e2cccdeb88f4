package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"go.uber.org/zap"
)

// HistoryRepository handles approval history database operations
type HistoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sql.DB, logger *zap.Logger) *HistoryRepository {
	return &HistoryRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an audit trail record
func (r *HistoryRepository) Create(ctx context.Context, h *entity.ApprovalHistory) error {
	query := `
		INSERT INTO approval_history (
			event_plan_id, actor_user_id, actor_role, action,
			previous_status, new_status, comment, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if h.Timestamp.IsZero() {
		h.Timestamp = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		h.EventPlanID,
		h.ActorUserID,
		h.ActorRole,
		h.Action,
		h.PreviousStatus,
		h.NewStatus,
		h.Comment,
		h.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create history record",
			zap.Int64("event_plan_id", h.EventPlanID),
			zap.Error(err))
		return fmt.Errorf("failed to create history record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	h.ID = id
	return nil
}

// ListByPlan retrieves the audit trail for an event plan, oldest first
func (r *HistoryRepository) ListByPlan(ctx context.Context, planID int64) ([]*entity.ApprovalHistory, error) {
	query := `
		SELECT id, event_plan_id, actor_user_id, actor_role, action,
			previous_status, new_status, comment, timestamp
		FROM approval_history
		WHERE event_plan_id = ?
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		r.logger.Error("Failed to list history",
			zap.Int64("event_plan_id", planID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var records []*entity.ApprovalHistory
	for rows.Next() {
		var h entity.ApprovalHistory
		var comment sql.NullString

		err := rows.Scan(
			&h.ID,
			&h.EventPlanID,
			&h.ActorUserID,
			&h.ActorRole,
			&h.Action,
			&h.PreviousStatus,
			&h.NewStatus,
			&comment,
			&h.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}

		if comment.Valid {
			h.Comment = comment.String
		}

		records = append(records, &h)
	}

	return records, rows.Err()
}
