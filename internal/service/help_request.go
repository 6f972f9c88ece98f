package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/config"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/metrics"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/notify"
)

// CreateHelpRequestInput carries the normalized boundary input for
// creating a help request. Coordinates are optional; when absent the
// request has no known location and is excluded from proximity search.
type CreateHelpRequestInput struct {
	Title         string
	Description   string
	Category      string
	Priority      string
	Latitude      *float64
	Longitude     *float64
	Address       string
	EstimatedTime int
}

// UpdateHelpRequestInput carries the content fields a requester may edit
// while the request is still pending.
type UpdateHelpRequestInput struct {
	Description string
	Category    string
	Priority    string
	Latitude    *float64
	Longitude   *float64
	Address     string
}

// HelpRequestService is the lifecycle engine plus the nearby-request
// query. Every transition validates against the current stored state and
// commits as a single atomic write; domain events are emitted only after
// the write succeeds.
type HelpRequestService interface {
	Create(ctx context.Context, actor models.Actor, in CreateHelpRequestInput) (*models.HelpRequest, error)
	Get(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error)
	List(ctx context.Context, filter models.RequestFilter) ([]*models.HelpRequest, error)
	Update(ctx context.Context, actor models.Actor, id uuid.UUID, in UpdateHelpRequestInput) (*models.HelpRequest, error)
	Accept(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error)
	Start(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error)
	Complete(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error)
	Rate(ctx context.Context, actor models.Actor, id uuid.UUID, rating int, feedback string) (*models.HelpRequest, error)
	Cancel(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error)
	Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error
	FindNearby(ctx context.Context, point geo.Point, radiusKm float64, status string) ([]*models.HelpRequest, error)
}

type helpRequestService struct {
	repo      HelpRequestRepository
	publisher notify.Publisher
	collector *metrics.Collector
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewHelpRequestService(repo HelpRequestRepository, publisher notify.Publisher, collector *metrics.Collector, logger *logrus.Logger, cfg *config.Config) HelpRequestService {
	return &helpRequestService{
		repo:      repo,
		publisher: publisher,
		collector: collector,
		logger:    logger,
		cfg:       cfg,
	}
}

// Authorization predicates, shared by the transitions below.

// canManage: the requester owns the record while it is theirs to manage;
// admins always may.
func canManage(actor models.Actor, req *models.HelpRequest) bool {
	return actor.IsAdmin() || actor.ID == req.RequesterID
}

func isAssignedHelper(actor models.Actor, req *models.HelpRequest) bool {
	return req.HelperID != nil && *req.HelperID == actor.ID
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return models.NewValidationError("description is required")
	}
	if len(description) > models.MaxDescriptionLen {
		return models.NewValidationError(fmt.Sprintf("description cannot be more than %d characters", models.MaxDescriptionLen))
	}
	return nil
}

func validateLocation(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return models.NewValidationError("latitude and longitude must be provided together")
	}
	if lat == nil {
		return nil
	}
	return geo.Point{Latitude: *lat, Longitude: *lng}.Validate()
}

// Create validates and normalizes the input, then stores a new pending
// request and emits a request-created event.
func (s *helpRequestService) Create(ctx context.Context, actor models.Actor, in CreateHelpRequestInput) (*models.HelpRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "help_request",
		"method":    "Create",
		"requester": actor.ID,
	})

	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	if len(in.Title) > models.MaxTitleLen {
		return nil, models.NewValidationError(fmt.Sprintf("title cannot be more than %d characters", models.MaxTitleLen))
	}
	category, err := models.NormalizeCategory(in.Category)
	if err != nil {
		return nil, err
	}
	priority, err := models.NormalizePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if err := validateLocation(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = deriveTitle(in.Description)
	}
	estimated := in.EstimatedTime
	if estimated <= 0 {
		estimated = models.DefaultEstimatedTime
	}

	req := &models.HelpRequest{
		RequesterID:   actor.ID,
		Title:         title,
		Description:   in.Description,
		Category:      category,
		Priority:      priority,
		Status:        models.StatusPending,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Address:       in.Address,
		EstimatedTime: estimated,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		log.WithError(err).Error("Failed to create help request in repository")
		return nil, err
	}

	s.collector.RecordRequestCreated(string(category))
	s.emit(ctx, notify.Event{
		Type:        models.NotificationRequestCreated,
		RequestID:   req.ID,
		RequesterID: req.RequesterID,
		Title:       "Help request posted",
		Message:     fmt.Sprintf("Your help request %q is now visible to nearby helpers", req.Title),
	})

	log.WithField("request_id", req.ID).Info("Help request created")
	return req, nil
}

// deriveTitle builds a default title from the first characters of the
// description.
func deriveTitle(description string) string {
	title := []rune(strings.TrimSpace(description))
	if len(title) > models.DerivedTitleLen {
		title = title[:models.DerivedTitleLen]
	}
	return string(title)
}

// Get returns a help request, consulting the cache first. Cache failures
// fall through to the database.
func (s *helpRequestService) Get(ctx context.Context, id uuid.UUID) (*models.HelpRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "help_request",
		"method":     "Get",
		"request_id": id,
	})

	cached, err := s.repo.GetFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Cache lookup failed, falling back to database")
	} else if cached != nil {
		return cached, nil
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetCache(ctx, req); err != nil {
		log.WithError(err).Warn("Failed to cache help request")
	}
	return req, nil
}

// List returns help requests filtered by status/category/priority.
func (s *helpRequestService) List(ctx context.Context, filter models.RequestFilter) ([]*models.HelpRequest, error) {
	return s.repo.List(ctx, filter)
}

// Update edits the content fields of a pending request. It re-runs the
// same validation as Create; the pending-status guard is enforced by the
// conditional update.
func (s *helpRequestService) Update(ctx context.Context, actor models.Actor, id uuid.UUID, in UpdateHelpRequestInput) (*models.HelpRequest, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, current) {
		return nil, models.NewAuthorizationError("not authorized to update this help request")
	}

	if err := validateDescription(in.Description); err != nil {
		return nil, err
	}
	category, err := models.NormalizeCategory(in.Category)
	if err != nil {
		return nil, err
	}
	priority, err := models.NormalizePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	if err := validateLocation(in.Latitude, in.Longitude); err != nil {
		return nil, err
	}

	updated := &models.HelpRequest{
		ID:          id,
		Title:       current.Title,
		Description: in.Description,
		Category:    category,
		Priority:    priority,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Address:     in.Address,
	}

	req, err := s.repo.UpdateContent(ctx, updated)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, id)
	return req, nil
}

// Accept binds the acting helper to a pending request. Under concurrent
// acceptance exactly one caller wins; the rest observe a ConflictError.
func (s *helpRequestService) Accept(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "help_request",
		"method":     "Accept",
		"request_id": id,
		"helper":     actor.ID,
	})

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.RequesterID == actor.ID {
		return nil, models.NewValidationError("you cannot accept your own help request")
	}

	req, err := s.repo.AcceptPending(ctx, id, actor.ID)
	if err != nil {
		log.WithError(err).Info("Accept did not go through")
		return nil, err
	}

	s.invalidateCache(ctx, id)
	s.collector.RecordTransition(string(models.StatusAccepted))
	s.emit(ctx, notify.Event{
		Type:        models.NotificationRequestAccepted,
		RequestID:   req.ID,
		RequesterID: req.RequesterID,
		HelperID:    req.HelperID,
		Title:       "Help is on the way",
		Message:     fmt.Sprintf("A helper accepted your request %q", req.Title),
	})

	log.Info("Help request accepted")
	return req, nil
}

// Start marks an accepted request as in-progress. Helper only.
func (s *helpRequestService) Start(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAssignedHelper(actor, current) {
		return nil, models.NewAuthorizationError("only the assigned helper can start this help request")
	}

	req, err := s.repo.StartAccepted(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, id)
	s.collector.RecordTransition(string(models.StatusInProgress))
	return req, nil
}

// Complete finishes an accepted or in-progress request. Helper only. The
// helper's total-helps counter is incremented asynchronously by the event
// worker.
func (s *helpRequestService) Complete(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "help_request",
		"method":     "Complete",
		"request_id": id,
		"helper":     actor.ID,
	})

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAssignedHelper(actor, current) {
		return nil, models.NewAuthorizationError("only the assigned helper can complete this help request")
	}

	req, err := s.repo.CompleteActive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)
	s.collector.RecordTransition(string(models.StatusCompleted))
	s.emit(ctx, notify.Event{
		Type:        models.NotificationRequestCompleted,
		RequestID:   req.ID,
		RequesterID: req.RequesterID,
		HelperID:    req.HelperID,
		Title:       "Help request completed",
		Message:     fmt.Sprintf("Your request %q has been completed. You can now rate your helper.", req.Title),
	})

	log.Info("Help request completed")
	return req, nil
}

// Rate stores the requester's rating exactly once after completion and
// triggers the helper's reputation recompute via the event worker.
func (s *helpRequestService) Rate(ctx context.Context, actor models.Actor, id uuid.UUID, rating int, feedback string) (*models.HelpRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "help_request",
		"method":     "Rate",
		"request_id": id,
	})

	if rating < 1 || rating > 5 {
		return nil, models.NewValidationError("rating must be between 1 and 5")
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID != current.RequesterID {
		return nil, models.NewAuthorizationError("only the requester can rate this help request")
	}

	req, err := s.repo.RateCompleted(ctx, id, rating, feedback)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)
	s.emit(ctx, notify.Event{
		Type:        models.NotificationRatingReceived,
		RequestID:   req.ID,
		RequesterID: req.RequesterID,
		HelperID:    req.HelperID,
		Title:       "You received a rating",
		Message:     fmt.Sprintf("You were rated %d/5 for %q", rating, req.Title),
	})

	log.WithField("rating", rating).Info("Help request rated")
	return req, nil
}

// Cancel closes a pending or accepted request. Requester or admin only.
func (s *helpRequestService) Cancel(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.HelpRequest, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, current) {
		return nil, models.NewAuthorizationError("not authorized to cancel this help request")
	}

	req, err := s.repo.CancelOpen(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, id)
	s.collector.RecordTransition(string(models.StatusCancelled))
	if req.HelperID != nil {
		s.emit(ctx, notify.Event{
			Type:        models.NotificationSystem,
			RequestID:   req.ID,
			RequesterID: req.RequesterID,
			HelperID:    req.HelperID,
			Title:       "Help request cancelled",
			Message:     fmt.Sprintf("The request %q you accepted was cancelled by the requester", req.Title),
		})
	}
	return req, nil
}

// Delete removes a request permanently. Requester or admin only. Deleting
// an already-assigned request is allowed; no notification is sent.
func (s *helpRequestService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, current) {
		return models.NewAuthorizationError("not authorized to delete this help request")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	return nil
}

// FindNearby returns requests with the given status within radiusKm of
// the point, most recent first.
func (s *helpRequestService) FindNearby(ctx context.Context, point geo.Point, radiusKm float64, status string) ([]*models.HelpRequest, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}
	if radiusKm == 0 {
		radiusKm = s.cfg.DefaultRadiusKm
	}
	if err := geo.ValidateRadius(radiusKm); err != nil {
		return nil, err
	}
	if s.cfg.MaxRadiusKm > 0 && radiusKm > s.cfg.MaxRadiusKm {
		return nil, models.NewValidationError(fmt.Sprintf("radius cannot exceed %.0f km", s.cfg.MaxRadiusKm))
	}
	statusFilter, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	s.collector.RecordNearbyQuery()
	return s.repo.FindNearby(ctx, point, radiusKm, statusFilter)
}

// emit publishes a domain event, fire-and-forget: a publish failure is
// logged and counted but never surfaces to the caller, because the state
// transition has already committed.
func (s *helpRequestService) emit(ctx context.Context, event notify.Event) {
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.collector.RecordEventFailed()
		s.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": event.Type,
			"request_id": event.RequestID,
		}).Error("Failed to publish domain event")
		return
	}
	s.collector.RecordEventPublished(string(event.Type))
}

func (s *helpRequestService) invalidateCache(ctx context.Context, id uuid.UUID) {
	if err := s.repo.InvalidateCache(ctx, id); err != nil {
		s.logger.WithError(err).WithField("request_id", id).Warn("Failed to invalidate help request cache")
	}
}
