package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/config"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/geo"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/metrics"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/models"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/notify"
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service/mocks"
)

// newTestHelpRequestService builds a service instance with mocked ports
// and a muted logger.
func newTestHelpRequestService(t *testing.T) (*helpRequestService, *mocks.MockHelpRequestRepository, *mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockHelpRequestRepository(ctrl)
	publisherMock := mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		DefaultRadiusKm: 10,
		MaxRadiusKm:     100,
	}
	// Each test gets its own registry so collectors never collide.
	collector := metrics.NewCollector(prometheus.NewRegistry())

	svc := NewHelpRequestService(repoMock, publisherMock, collector, logger, cfg)
	return svc.(*helpRequestService), repoMock, publisherMock
}

func TestCreateHelpRequest_Success(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	lat, lng := 55.75, 37.61

	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, req *models.HelpRequest) error {
			req.ID = uuid.New()
			return nil
		}).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, models.NotificationRequestCreated, event.Type)
			assert.Equal(t, actor.ID, event.RequesterID)
			assert.False(t, event.OccurredAt.IsZero())
		}).Return(nil).Times(1)

	req, err := service.Create(ctx, actor, CreateHelpRequestInput{
		Title:       "Need a ride",
		Description: "Need a ride to the hospital tomorrow morning",
		Category:    "Transport",
		Priority:    "high",
		Latitude:    &lat,
		Longitude:   &lng,
	})

	require.NoError(t, err)
	assert.Equal(t, actor.ID, req.RequesterID)
	assert.Equal(t, models.CategoryTransport, req.Category)
	assert.Equal(t, models.PriorityHigh, req.Priority)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, models.DefaultEstimatedTime, req.EstimatedTime)
	assert.True(t, req.HasLocation())
}

func TestCreateHelpRequest_Defaults(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	req, err := service.Create(ctx, actor, CreateHelpRequestInput{
		Description: "Groceries for an elderly neighbour",
	})

	require.NoError(t, err)
	assert.Equal(t, models.CategoryGeneral, req.Category)
	assert.Equal(t, models.PriorityMedium, req.Priority)
	assert.Equal(t, "Groceries for an elderly neighbour", req.Title)
	assert.False(t, req.HasLocation())
}

func TestCreateHelpRequest_DerivedTitleTruncatesRunes(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	description := strings.Repeat("я", 80)

	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)

	req, err := service.Create(ctx, actor, CreateHelpRequestInput{Description: description})

	require.NoError(t, err)
	assert.Equal(t, models.DerivedTitleLen, len([]rune(req.Title)))
	assert.Equal(t, strings.Repeat("я", models.DerivedTitleLen), req.Title)
}

func TestCreateHelpRequest_ValidationErrors(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	lat := 55.75
	badLat := 95.0
	lng := 37.61

	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	cases := []struct {
		name  string
		input CreateHelpRequestInput
	}{
		{"empty description", CreateHelpRequestInput{Description: "   "}},
		{"description too long", CreateHelpRequestInput{Description: strings.Repeat("a", models.MaxDescriptionLen+1)}},
		{"title too long", CreateHelpRequestInput{Description: "ok", Title: strings.Repeat("t", models.MaxTitleLen+1)}},
		{"unknown category", CreateHelpRequestInput{Description: "ok", Category: "plumbing"}},
		{"unknown priority", CreateHelpRequestInput{Description: "ok", Priority: "urgent"}},
		{"latitude without longitude", CreateHelpRequestInput{Description: "ok", Latitude: &lat}},
		{"latitude out of range", CreateHelpRequestInput{Description: "ok", Latitude: &badLat, Longitude: &lng}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(ctx, actor, tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestCreateHelpRequest_PublishFailureDoesNotFailCreate(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(models.NewDependencyError("redis unavailable", nil)).
		Times(1)

	_, err := service.Create(ctx, actor, CreateHelpRequestInput{Description: "Need help moving a couch"})

	require.NoError(t, err)
}

func TestGetHelpRequest_FromCache(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	expected := &models.HelpRequest{ID: requestID, Title: "Cached request"}

	repoMock.EXPECT().GetFromCache(ctx, requestID).Return(expected, nil).Times(1)

	req, err := service.Get(ctx, requestID)

	require.NoError(t, err)
	assert.Equal(t, expected, req)
}

func TestGetHelpRequest_FromDB(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	expected := &models.HelpRequest{ID: requestID, Title: "Stored request"}

	repoMock.EXPECT().GetFromCache(ctx, requestID).Return(nil, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, requestID).Return(expected, nil).Times(1)
	repoMock.EXPECT().SetCache(ctx, expected).Return(nil).Times(1)

	req, err := service.Get(ctx, requestID)

	require.NoError(t, err)
	assert.Equal(t, expected, req)
}

func TestGetHelpRequest_NotFound(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()

	repoMock.EXPECT().GetFromCache(ctx, requestID).Return(nil, nil).Times(1)
	repoMock.EXPECT().GetByID(ctx, requestID).Return(nil, models.NewNotFoundError("help request not found")).Times(1)

	req, err := service.Get(ctx, requestID)

	require.Error(t, err)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAcceptHelpRequest_Success(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requesterID := uuid.New()
	helper := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	accepted := &models.HelpRequest{
		ID:          requestID,
		RequesterID: requesterID,
		HelperID:    &helper.ID,
		Status:      models.StatusAccepted,
	}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requesterID, Status: models.StatusPending}, nil).
		Times(1)
	repoMock.EXPECT().AcceptPending(ctx, requestID, helper.ID).Return(accepted, nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, models.NotificationRequestAccepted, event.Type)
			assert.Equal(t, requesterID, event.RequesterID)
			require.NotNil(t, event.HelperID)
			assert.Equal(t, helper.ID, *event.HelperID)
		}).Return(nil).Times(1)

	req, err := service.Accept(ctx, helper, requestID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, req.Status)
}

func TestAcceptHelpRequest_OwnRequest(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: actor.ID, Status: models.StatusPending}, nil).
		Times(1)
	repoMock.EXPECT().AcceptPending(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Accept(ctx, actor, requestID)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAcceptHelpRequest_AlreadyAccepted(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	helper := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	otherHelper := uuid.New()

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: uuid.New(), HelperID: &otherHelper, Status: models.StatusAccepted}, nil).
		Times(1)
	repoMock.EXPECT().
		AcceptPending(ctx, requestID, helper.ID).
		Return(nil, models.NewConflictError("help request is no longer pending")).
		Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Accept(ctx, helper, requestID)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestStartHelpRequest_NotAssignedHelper(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	assigned := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: uuid.New(), HelperID: &assigned, Status: models.StatusAccepted}, nil).
		Times(1)
	repoMock.EXPECT().StartAccepted(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Start(ctx, actor, requestID)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestCompleteHelpRequest_Success(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requesterID := uuid.New()
	helper := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	completed := &models.HelpRequest{
		ID:          requestID,
		RequesterID: requesterID,
		HelperID:    &helper.ID,
		Status:      models.StatusCompleted,
	}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requesterID, HelperID: &helper.ID, Status: models.StatusInProgress}, nil).
		Times(1)
	repoMock.EXPECT().CompleteActive(ctx, requestID).Return(completed, nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, models.NotificationRequestCompleted, event.Type)
		}).Return(nil).Times(1)

	req, err := service.Complete(ctx, helper, requestID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, req.Status)
}

func TestCompleteHelpRequest_NotAssignedHelper(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	// The requester cannot complete their own request; only the helper can.
	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID, Status: models.StatusAccepted}, nil).
		Times(1)
	repoMock.EXPECT().CompleteActive(gomock.Any(), gomock.Any()).Times(0)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Complete(ctx, requester, requestID)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestRateHelpRequest_Success(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	helperID := uuid.New()
	rating := 5
	rated := &models.HelpRequest{
		ID:          requestID,
		RequesterID: requester.ID,
		HelperID:    &helperID,
		Status:      models.StatusCompleted,
		Rating:      &rating,
	}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID, HelperID: &helperID, Status: models.StatusCompleted}, nil).
		Times(1)
	repoMock.EXPECT().RateCompleted(ctx, requestID, 5, "Very kind and fast").Return(rated, nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, models.NotificationRatingReceived, event.Type)
			require.NotNil(t, event.HelperID)
			assert.Equal(t, helperID, *event.HelperID)
		}).Return(nil).Times(1)

	req, err := service.Rate(ctx, requester, requestID, 5, "Very kind and fast")

	require.NoError(t, err)
	require.NotNil(t, req.Rating)
	assert.Equal(t, 5, *req.Rating)
}

func TestRateHelpRequest_OutOfRange(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Rate(ctx, requester, uuid.New(), rating, "")
		require.Error(t, err, "rating %d", rating)
		assert.ErrorIs(t, err, models.ErrValidation)
	}
}

func TestRateHelpRequest_NotRequester(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: uuid.New(), Status: models.StatusCompleted}, nil).
		Times(1)
	repoMock.EXPECT().RateCompleted(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Rate(ctx, actor, requestID, 4, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestRateHelpRequest_AlreadyRated(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	existing := 4

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID, Status: models.StatusCompleted, Rating: &existing}, nil).
		Times(1)
	repoMock.EXPECT().
		RateCompleted(ctx, requestID, 5, "").
		Return(nil, models.NewConflictError("help request is already rated")).
		Times(1)

	_, err := service.Rate(ctx, requester, requestID, 5, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestCancelHelpRequest_NotifiesAssignedHelper(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	helperID := uuid.New()
	cancelled := &models.HelpRequest{
		ID:          requestID,
		RequesterID: requester.ID,
		HelperID:    &helperID,
		Status:      models.StatusCancelled,
	}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID, HelperID: &helperID, Status: models.StatusAccepted}, nil).
		Times(1)
	repoMock.EXPECT().CancelOpen(ctx, requestID).Return(cancelled, nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)

	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(_ context.Context, event notify.Event) {
			assert.Equal(t, models.NotificationSystem, event.Type)
			require.NotNil(t, event.HelperID)
			assert.Equal(t, helperID, *event.HelperID)
		}).Return(nil).Times(1)

	req, err := service.Cancel(ctx, requester, requestID)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, req.Status)
}

func TestCancelHelpRequest_NoHelperNoNotification(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	cancelled := &models.HelpRequest{ID: requestID, RequesterID: requester.ID, Status: models.StatusCancelled}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID, Status: models.StatusPending}, nil).
		Times(1)
	repoMock.EXPECT().CancelOpen(ctx, requestID).Return(cancelled, nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Cancel(ctx, requester, requestID)

	require.NoError(t, err)
}

func TestCancelHelpRequest_NotOwner(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: uuid.New(), Status: models.StatusPending}, nil).
		Times(1)
	repoMock.EXPECT().CancelOpen(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Cancel(ctx, actor, requestID)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestCancelHelpRequest_AdminMay(t *testing.T) {
	service, repoMock, publisherMock := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	admin := models.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	cancelled := &models.HelpRequest{ID: requestID, RequesterID: uuid.New(), Status: models.StatusCancelled}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: cancelled.RequesterID, Status: models.StatusPending}, nil).
		Times(1)
	repoMock.EXPECT().CancelOpen(ctx, requestID).Return(cancelled, nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Cancel(ctx, admin, requestID)

	require.NoError(t, err)
}

func TestUpdateHelpRequest_NotOwner(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: uuid.New(), Status: models.StatusPending}, nil).
		Times(1)
	repoMock.EXPECT().UpdateContent(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.Update(ctx, actor, requestID, UpdateHelpRequestInput{Description: "new description"})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestUpdateHelpRequest_NoLongerPending(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID, Status: models.StatusAccepted}, nil).
		Times(1)
	repoMock.EXPECT().
		UpdateContent(ctx, gomock.Any()).
		Return(nil, models.NewConflictError("only pending help requests can be updated")).
		Times(1)

	_, err := service.Update(ctx, requester, requestID, UpdateHelpRequestInput{Description: "new description"})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestFindNearby_DefaultRadius(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	point := geo.Point{Latitude: 55.75, Longitude: 37.61}
	expected := []*models.HelpRequest{{ID: uuid.New(), Status: models.StatusPending}}

	repoMock.EXPECT().
		FindNearby(ctx, point, 10.0, models.StatusPending).
		Return(expected, nil).
		Times(1)

	requests, err := service.FindNearby(ctx, point, 0, "")

	require.NoError(t, err)
	assert.Equal(t, expected, requests)
}

func TestFindNearby_InvalidPoint(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()

	repoMock.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.FindNearby(ctx, geo.Point{Latitude: 91, Longitude: 0}, 5, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFindNearby_RadiusOverLimit(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()

	repoMock.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.FindNearby(ctx, geo.Point{Latitude: 55.75, Longitude: 37.61}, 250, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFindNearby_UnknownStatus(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()

	repoMock.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.FindNearby(ctx, geo.Point{Latitude: 55.75, Longitude: 37.61}, 5, "done")

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteHelpRequest_OwnerAndAdmin(t *testing.T) {
	service, repoMock, _ := newTestHelpRequestService(t)
	ctx := context.Background()
	requestID := uuid.New()
	requester := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	repoMock.EXPECT().
		GetByID(ctx, requestID).
		Return(&models.HelpRequest{ID: requestID, RequesterID: requester.ID}, nil).
		Times(1)
	repoMock.EXPECT().Delete(ctx, requestID).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateCache(ctx, requestID).Return(nil).Times(1)

	require.NoError(t, service.Delete(ctx, requester, requestID))
}
