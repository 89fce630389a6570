package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/routineboard/routineboard/internal/model"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Load returns all notifications, newest first.
func (r *NotificationRepository) Load(ctx context.Context) ([]model.Notification, error) {
	query := `
		SELECT id, recipient_program_id, message, severity, created_at, is_read, related_request_id, slot_context
		FROM notifications
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		var relatedRequest *string
		err := rows.Scan(
			&n.ID,
			&n.RecipientProgramID,
			&n.Message,
			&n.Severity,
			&n.Timestamp,
			&n.IsRead,
			&relatedRequest,
			&n.SlotContext,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if relatedRequest != nil {
			n.RelatedRequestID = *relatedRequest
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// ReplaceAll swaps the stored notifications for the given ones in a
// single transaction.
func (r *NotificationRepository) ReplaceAll(ctx context.Context, notifications []model.Notification) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM notifications`); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}

	query := `
		INSERT INTO notifications (id, recipient_program_id, message, severity, created_at, is_read, related_request_id, slot_context)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, n := range notifications {
		var relatedRequest *string
		if n.RelatedRequestID != "" {
			relatedRequest = &n.RelatedRequestID
		}
		_, err := tx.Exec(ctx, query,
			n.ID,
			n.RecipientProgramID,
			n.Message,
			n.Severity,
			n.Timestamp,
			n.IsRead,
			relatedRequest,
			n.SlotContext,
		)
		if err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
