package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service/mocks"
)

func newTestReputationService(t *testing.T) (ReputationService, *mocks.MockHelpRequestRepository, *mocks.MockUserDirectory) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockHelpRequestRepository(ctrl)
	usersMock := mocks.NewMockUserDirectory(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	return NewReputationService(repoMock, usersMock, logger), repoMock, usersMock
}

func ratedRequests(helperID uuid.UUID, ratings ...int) []*models.HelpRequest {
	requests := make([]*models.HelpRequest, 0, len(ratings))
	for _, r := range ratings {
		rating := r
		requests = append(requests, &models.HelpRequest{
			ID:       uuid.New(),
			HelperID: &helperID,
			Status:   models.StatusCompleted,
			Rating:   &rating,
		})
	}
	return requests
}

func TestRecomputeRating_MeanRoundedToOneDecimal(t *testing.T) {
	service, repoMock, usersMock := newTestReputationService(t)
	ctx := context.Background()
	helperID := uuid.New()

	// (5+4+4)/3 = 4.333... rounds to 4.3
	repoMock.EXPECT().ListRatedByHelper(ctx, helperID).Return(ratedRequests(helperID, 5, 4, 4), nil).Times(1)
	usersMock.EXPECT().SetRating(ctx, helperID, 4.3).Return(nil).Times(1)

	require.NoError(t, service.RecomputeRating(ctx, helperID))
}

func TestRecomputeRating_RoundsHalfUp(t *testing.T) {
	service, repoMock, usersMock := newTestReputationService(t)
	ctx := context.Background()
	helperID := uuid.New()

	// (4+5)/2 = 4.5 stays 4.5; (5+4+4+4)/4 = 4.25 rounds to 4.3.
	repoMock.EXPECT().ListRatedByHelper(ctx, helperID).Return(ratedRequests(helperID, 5, 4, 4, 4), nil).Times(1)
	usersMock.EXPECT().SetRating(ctx, helperID, 4.3).Return(nil).Times(1)

	require.NoError(t, service.RecomputeRating(ctx, helperID))
}

func TestRecomputeRating_NoRatedRequestsIsNoOp(t *testing.T) {
	service, repoMock, usersMock := newTestReputationService(t)
	ctx := context.Background()
	helperID := uuid.New()

	repoMock.EXPECT().ListRatedByHelper(ctx, helperID).Return(nil, nil).Times(1)
	usersMock.EXPECT().SetRating(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, service.RecomputeRating(ctx, helperID))
}

func TestRecomputeRating_Idempotent(t *testing.T) {
	service, repoMock, usersMock := newTestReputationService(t)
	ctx := context.Background()
	helperID := uuid.New()

	// Running the recompute twice over the same history converges to the
	// same stored value.
	repoMock.EXPECT().ListRatedByHelper(ctx, helperID).Return(ratedRequests(helperID, 3, 5), nil).Times(2)
	usersMock.EXPECT().SetRating(ctx, helperID, 4.0).Return(nil).Times(2)

	require.NoError(t, service.RecomputeRating(ctx, helperID))
	require.NoError(t, service.RecomputeRating(ctx, helperID))
}

func TestRecomputeRating_ListError(t *testing.T) {
	service, repoMock, usersMock := newTestReputationService(t)
	ctx := context.Background()
	helperID := uuid.New()
	repoError := fmt.Errorf("query failed")

	repoMock.EXPECT().ListRatedByHelper(ctx, helperID).Return(nil, repoError).Times(1)
	usersMock.EXPECT().SetRating(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := service.RecomputeRating(ctx, helperID)
	require.Error(t, err)
	assert.ErrorIs(t, err, repoError)
}

func TestIncrementHelpCount(t *testing.T) {
	service, _, usersMock := newTestReputationService(t)
	ctx := context.Background()
	helperID := uuid.New()

	usersMock.EXPECT().IncrementTotalHelps(ctx, helperID).Return(nil).Times(1)

	require.NoError(t, service.IncrementHelpCount(ctx, helperID))
}
