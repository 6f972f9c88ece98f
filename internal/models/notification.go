package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification by the lifecycle transition
// that produced it.
type NotificationType string

const (
	NotificationRequestCreated   NotificationType = "request-created"
	NotificationRequestAccepted  NotificationType = "request-accepted"
	NotificationRequestCompleted NotificationType = "request-completed"
	NotificationRatingReceived   NotificationType = "rating-received"
	NotificationSystem           NotificationType = "system"
)

// Notification is produced by the lifecycle engine on each transition and
// mutated afterwards only by its recipient marking it read.
type Notification struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Type           NotificationType `json:"type"`
	RelatedRequest *uuid.UUID       `json:"related_request,omitempty"`
	IsRead         bool             `json:"is_read"`
	CreatedAt      time.Time        `json:"created_at"`
}
