package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ReputationService recomputes a helper's aggregate rating from scratch.
// Recomputing from the full historical set instead of keeping a running
// average makes concurrent or retried recomputes converge to the same
// value regardless of interleaving.
type ReputationService interface {
	RecomputeRating(ctx context.Context, helperID uuid.UUID) error
	IncrementHelpCount(ctx context.Context, helperID uuid.UUID) error
}

type reputationService struct {
	requests HelpRequestRepository
	users    UserDirectory
	logger   *logrus.Logger
}

func NewReputationService(requests HelpRequestRepository, users UserDirectory, logger *logrus.Logger) ReputationService {
	return &reputationService{
		requests: requests,
		users:    users,
		logger:   logger,
	}
}

// RecomputeRating fetches every rated request completed by the helper and
// stores the mean rounded to one decimal. With no rated requests it leaves
// the prior rating untouched.
func (s *reputationService) RecomputeRating(ctx context.Context, helperID uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "reputation",
		"method":  "RecomputeRating",
		"helper":  helperID,
	})

	rated, err := s.requests.ListRatedByHelper(ctx, helperID)
	if err != nil {
		log.WithError(err).Error("Failed to list rated help requests")
		return err
	}
	if len(rated) == 0 {
		log.Debug("No rated help requests, keeping prior rating")
		return nil
	}

	sum := 0
	for _, req := range rated {
		sum += *req.Rating
	}
	mean := math.Round(float64(sum)/float64(len(rated))*10) / 10

	if err := s.users.SetRating(ctx, helperID, mean); err != nil {
		log.WithError(err).Error("Failed to store recomputed rating")
		return err
	}

	log.WithFields(logrus.Fields{"rating": mean, "rated_count": len(rated)}).Info("Helper rating recomputed")
	return nil
}

// IncrementHelpCount bumps the helper's total-helps counter, once per
// completed request.
func (s *reputationService) IncrementHelpCount(ctx context.Context, helperID uuid.UUID) error {
	if err := s.users.IncrementTotalHelps(ctx, helperID); err != nil {
		s.logger.WithError(err).WithField("helper", helperID).Error("Failed to increment total helps")
		return err
	}
	return nil
}
