package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

// HelpRequestRepository is the request store port. The transition methods
// (AcceptPending, CompleteActive, RateCompleted, CancelOpen, StartAccepted,
// UpdateContent) are atomic conditional updates: the status guard and the
// write happen as one statement, and a failed guard surfaces as a
// ConflictError.
type HelpRequestRepository interface {
	Create(ctx context.Context, req *models.HelpRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error)
	AcceptPending(ctx context.Context, id, helperID uuid.UUID) (*models.HelpRequest, error)
	StartAccepted(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error)
	CompleteActive(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error)
	RateCompleted(ctx context.Context, id uuid.UUID, rating int, feedback string) (*models.HelpRequest, error)
	CancelOpen(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error)
	UpdateContent(ctx context.Context, req *models.HelpRequest) (*models.HelpRequest, error)
	List(ctx context.Context, filter models.RequestFilter) ([]*models.HelpRequest, error)
	FindNearby(ctx context.Context, point geo.Point, radiusKm float64, status models.Status) ([]*models.HelpRequest, error)
	ListRatedByHelper(ctx context.Context, helperID uuid.UUID) ([]*models.HelpRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetFromCache(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error)
	SetCache(ctx context.Context, req *models.HelpRequest) error
	InvalidateCache(ctx context.Context, id uuid.UUID) error
}

// UserDirectory is the user directory port consumed by the lifecycle
// engine and the reputation aggregator.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	SetRating(ctx context.Context, id uuid.UUID, rating float64) error
	IncrementTotalHelps(ctx context.Context, id uuid.UUID) error
	FindHelpersNear(ctx context.Context, point geo.Point, radiusKm float64) ([]*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationStore persists notifications and recipient read state.
type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
