package service

import (
	"bytes"
	"context"
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
	"github.com/RhythmPahwa14/Help-Nearby-Backend/internal/service/mocks"
)

func newTestUserService(t *testing.T) (UserService, *mocks.MockUserDirectory) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserDirectory(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{DefaultRadiusKm: 10, MaxRadiusKm: 100}
	collector := metrics.NewCollector(prometheus.NewRegistry())

	return NewUserService(usersMock, collector, logger, cfg), usersMock
}

func TestListUsers_AdminOnly(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()

	usersMock.EXPECT().List(gomock.Any()).Times(0)

	_, err := service.List(ctx, models.Actor{ID: uuid.New(), Role: models.RoleUser})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestListUsers_Admin(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()
	expected := []*models.User{{ID: uuid.New(), Name: "Alice"}}

	usersMock.EXPECT().List(ctx).Return(expected, nil).Times(1)

	users, err := service.List(ctx, models.Actor{ID: uuid.New(), Role: models.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, expected, users)
}

func TestUpdateProfile_SelfOnly(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}

	usersMock.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)
	usersMock.EXPECT().UpdateProfile(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.UpdateProfile(ctx, actor, uuid.New(), UpdateProfileInput{Name: "Bob"})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestUpdateProfile_Success(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	lat, lng := 55.75, 37.61

	usersMock.EXPECT().
		GetByID(ctx, actor.ID).
		Return(&models.User{ID: actor.ID, Name: "Old Name", Email: "user@example.com"}, nil).
		Times(1)
	usersMock.EXPECT().
		UpdateProfile(ctx, gomock.Any()).
		Do(func(_ context.Context, user *models.User) {
			assert.Equal(t, "New Name", user.Name)
			assert.True(t, user.IsHelper)
			require.NotNil(t, user.Latitude)
			assert.Equal(t, lat, *user.Latitude)
		}).Return(nil).Times(1)

	user, err := service.UpdateProfile(ctx, actor, actor.ID, UpdateProfileInput{
		Name:      "New Name",
		IsHelper:  true,
		Latitude:  &lat,
		Longitude: &lng,
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestUpdateProfile_UnpairedCoordinates(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	lat := 55.75

	usersMock.EXPECT().GetByID(gomock.Any(), gomock.Any()).Times(0)

	_, err := service.UpdateProfile(ctx, actor, actor.ID, UpdateProfileInput{Name: "Bob", Latitude: &lat})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteUser_AdminOnly(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()

	usersMock.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	err := service.Delete(ctx, models.Actor{ID: uuid.New(), Role: models.RoleUser}, uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrAuthorization)
}

func TestFindNearbyHelpers_DefaultRadius(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()
	point := geo.Point{Latitude: 55.75, Longitude: 37.61}
	expected := []*models.User{{ID: uuid.New(), Name: "Helper", IsHelper: true}}

	usersMock.EXPECT().FindHelpersNear(ctx, point, 10.0).Return(expected, nil).Times(1)

	helpers, err := service.FindNearbyHelpers(ctx, point, 0)

	require.NoError(t, err)
	assert.Equal(t, expected, helpers)
}

func TestFindNearbyHelpers_InvalidPoint(t *testing.T) {
	service, usersMock := newTestUserService(t)
	ctx := context.Background()

	usersMock.EXPECT().FindHelpersNear(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := service.FindNearbyHelpers(ctx, geo.Point{Latitude: 0, Longitude: 200}, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrValidation)
}
