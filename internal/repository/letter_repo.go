package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/campusflow/event-approval/internal/domain/entity"
	"go.uber.org/zap"
)

// LetterRepository handles signed letter database operations
type LetterRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLetterRepository creates a new letter repository
func NewLetterRepository(db *sql.DB, logger *zap.Logger) *LetterRepository {
	return &LetterRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new signed letter. Letters are append-only: nothing
// updates them afterwards except MarkSent.
func (r *LetterRepository) Create(ctx context.Context, letter *entity.SignedLetter) error {
	query := `
		INSERT INTO signed_letters (
			event_plan_id, reference_no, from_role, to_role, letter_type,
			letter_content, signature_data, status, file_path, file_name, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if letter.Status == "" {
		letter.Status = entity.LetterStatusPending
	}
	letter.CreatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		letter.EventPlanID,
		letter.ReferenceNo,
		letter.FromRole,
		letter.ToRole,
		letter.LetterType,
		letter.LetterContent,
		letter.SignatureData,
		letter.Status,
		letter.FilePath,
		letter.FileName,
		letter.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create signed letter",
			zap.Int64("event_plan_id", letter.EventPlanID),
			zap.String("from_role", letter.FromRole),
			zap.String("letter_type", letter.LetterType),
			zap.Error(err))
		return fmt.Errorf("failed to create signed letter: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	letter.ID = id
	return nil
}

// HasLetter reports whether a letter of the given type from the given role
// is on file for the plan
func (r *LetterRepository) HasLetter(ctx context.Context, planID int64, fromRole, letterType string) (bool, error) {
	query := `
		SELECT COUNT(1) FROM signed_letters
		WHERE event_plan_id = ? AND from_role = ? AND letter_type = ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, planID, fromRole, letterType).Scan(&count); err != nil {
		r.logger.Error("Failed to check signed letter",
			zap.Int64("event_plan_id", planID),
			zap.String("from_role", fromRole),
			zap.Error(err))
		return false, fmt.Errorf("failed to check signed letter: %w", err)
	}

	return count > 0, nil
}

// ApprovalsOnFile returns, for the given roles, which ones have an APPROVAL
// letter recorded for the plan. The engine calls this at final-approval
// decision time rather than trusting any cached view.
func (r *LetterRepository) ApprovalsOnFile(ctx context.Context, planID int64, roles []string) (map[string]bool, error) {
	if len(roles) == 0 {
		return map[string]bool{}, nil
	}

	placeholders := strings.Repeat("?, ", len(roles)-1) + "?"
	query := fmt.Sprintf(`
		SELECT DISTINCT from_role FROM signed_letters
		WHERE event_plan_id = ? AND letter_type = ? AND from_role IN (%s)
	`, placeholders)

	args := make([]interface{}, 0, len(roles)+2)
	args = append(args, planID, entity.LetterTypeApproval)
	for _, role := range roles {
		args = append(args, role)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query approvals on file",
			zap.Int64("event_plan_id", planID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	onFile := make(map[string]bool, len(roles))
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan approval role: %w", err)
		}
		onFile[role] = true
	}

	return onFile, rows.Err()
}

// ListByPlan retrieves all letters for an event plan, oldest first
func (r *LetterRepository) ListByPlan(ctx context.Context, planID int64) ([]*entity.SignedLetter, error) {
	query := `
		SELECT id, event_plan_id, reference_no, from_role, to_role, letter_type,
			letter_content, signature_data, status, file_path, file_name, created_at
		FROM signed_letters
		WHERE event_plan_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		r.logger.Error("Failed to list signed letters",
			zap.Int64("event_plan_id", planID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list signed letters: %w", err)
	}
	defer rows.Close()

	var letters []*entity.SignedLetter
	for rows.Next() {
		var letter entity.SignedLetter
		var signatureData, filePath, fileName sql.NullString

		err := rows.Scan(
			&letter.ID,
			&letter.EventPlanID,
			&letter.ReferenceNo,
			&letter.FromRole,
			&letter.ToRole,
			&letter.LetterType,
			&letter.LetterContent,
			&signatureData,
			&letter.Status,
			&filePath,
			&fileName,
			&letter.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signed letter: %w", err)
		}

		if signatureData.Valid {
			letter.SignatureData = signatureData.String
		}
		if filePath.Valid {
			letter.FilePath = filePath.String
		}
		if fileName.Valid {
			letter.FileName = fileName.String
		}

		letters = append(letters, &letter)
	}

	return letters, rows.Err()
}

// MarkSent bumps the letter status to SENT. This is the only mutation a
// letter ever receives.
func (r *LetterRepository) MarkSent(ctx context.Context, id int64) error {
	query := `UPDATE signed_letters SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.ExecContext(ctx, query, entity.LetterStatusSent, id, entity.LetterStatusPending)
	if err != nil {
		r.logger.Error("Failed to mark letter sent",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("failed to mark letter sent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("letter %d not found or already sent", id)
	}

	return nil
}
