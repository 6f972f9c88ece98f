package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/config"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/metrics"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
)

// UpdateProfileInput carries the user-editable profile fields.
type UpdateProfileInput struct {
	Name      string
	Phone     string
	IsHelper  bool
	Latitude  *float64
	Longitude *float64
	Address   string
}

// UserService exposes the user directory and the nearby-helpers query.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, actor models.Actor) ([]*models.User, error)
	UpdateProfile(ctx context.Context, actor models.Actor, id uuid.UUID, in UpdateProfileInput) (*models.User, error)
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
	FindNearbyHelpers(ctx context.Context, point geo.Point, radiusKm float64) ([]*models.User, error)
}

type userService struct {
	users     UserDirectory
	collector *metrics.Collector
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewUserService(users UserDirectory, collector *metrics.Collector, logger *logrus.Logger, cfg *config.Config) UserService {
	return &userService{
		users:     users,
		collector: collector,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users. Admin only.
func (s *userService) List(ctx context.Context, actor models.Actor) ([]*models.User, error) {
	if !actor.IsAdmin() {
		return nil, models.NewAuthorizationError("only admins can list users")
	}
	return s.users.List(ctx)
}

// UpdateProfile edits a profile. Users may edit their own; admins any.
func (s *userService) UpdateProfile(ctx context.Context, actor models.Actor, id uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, models.NewAuthorizationError("not authorized to update this profile")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, models.NewValidationError("latitude and longitude must be provided together")
	}
	if in.Latitude != nil {
		if err := (geo.Point{Latitude: *in.Latitude, Longitude: *in.Longitude}).Validate(); err != nil {
			return nil, err
		}
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Phone = in.Phone
	user.IsHelper = in.IsHelper
	user.Latitude = in.Latitude
	user.Longitude = in.Longitude
	user.Address = in.Address

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		s.logger.WithError(err).WithField("user_id", id).Error("Failed to update user profile")
		return nil, err
	}
	return user, nil
}

// Delete removes a user. Admin only.
func (s *userService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return models.NewAuthorizationError("only admins can delete users")
	}
	return s.users.Delete(ctx, id)
}

// FindNearbyHelpers returns helpers within radiusKm of the point, using
// the same distance policy as the nearby-requests query.
func (s *userService) FindNearbyHelpers(ctx context.Context, point geo.Point, radiusKm float64) ([]*models.User, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}
	if radiusKm == 0 {
		radiusKm = s.cfg.DefaultRadiusKm
	}
	if err := geo.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}

	s.collector.RecordNearbyQuery()
	return s.users.FindHelpersNear(ctx, point, radiusKm)
}
