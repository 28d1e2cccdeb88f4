package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"go.uber.org/zap"
)

// NotificationRepository handles notification database operations
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new notification record
func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (
			user_id, title, message, type, status, event_plan_id, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if n.Status == "" {
		n.Status = entity.NotificationStatusUnread
	}
	n.CreatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		n.UserID,
		n.Title,
		n.Message,
		n.Type,
		n.Status,
		n.EventPlanID,
		n.Metadata,
		n.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create notification",
			zap.Int64("user_id", n.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	n.ID = id
	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, status, event_plan_id, metadata, read_at, created_at
		FROM notifications
		WHERE user_id = ?
	`
	args := []interface{}{userID}

	if unreadOnly {
		query += ` AND status = ?`
		args = append(args, entity.NotificationStatusUnread)
	}

	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list notifications",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		var metadata sql.NullString
		var readAt sql.NullTime

		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.Status,
			&n.EventPlanID,
			&metadata,
			&readAt,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		if metadata.Valid {
			n.Metadata = metadata.String
		}
		if readAt.Valid {
			n.ReadAt = &readAt.Time
		}

		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkRead transitions a notification from UNREAD to READ. The WHERE clause
// enforces the one-way transition: an already-read notification is untouched.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	query := `
		UPDATE notifications
		SET status = ?, read_at = ?
		WHERE id = ? AND user_id = ? AND status = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		entity.NotificationStatusRead, time.Now(), id, userID, entity.NotificationStatusUnread)
	if err != nil {
		r.logger.Error("Failed to mark notification read",
			zap.Int64("id", id),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return affected == 1, nil
}
