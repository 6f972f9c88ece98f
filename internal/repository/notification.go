package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service"
)

// NotificationRepository persists notifications produced by lifecycle
// transitions.
type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) service.NotificationStore {
	return &NotificationRepository{db: db}
}

// Insert stores a new notification for its recipient.
func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, related_request)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		n.UserID,
		n.Title,
		n.Message,
		n.Type,
		n.RelatedRequest,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return models.NewDependencyError("failed to insert notification", err)
	}
	return nil
}

// ListByUser returns a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error) {
	query := `
		SELECT id, user_id, title, message, type, related_request, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, models.NewDependencyError("failed to list notifications", err)
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n := &models.Notification{}
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Title,
			&n.Message,
			&n.Type,
			&n.RelatedRequest,
			&n.IsRead,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, models.NewDependencyError("failed to scan notification row", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewDependencyError("notification row iteration failed", err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read; the user filter keeps a
// recipient from marking someone else's notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2;`, id, userID)
	if err != nil {
		return models.NewDependencyError("failed to mark notification read", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.NewNotFoundError(fmt.Sprintf("notification %s not found", id))
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE;`, userID)
	if err != nil {
		return models.NewDependencyError("failed to mark notifications read", err)
	}
	return nil
}
