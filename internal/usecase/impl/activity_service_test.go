package impl

import (
	"context"
	"log/slog"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newActivityServiceForTest(t *testing.T) (usecase.ActivityUsecase, *mockRepo.MockActivityRepository) {
	t.Helper()

	activityRepo := mockRepo.NewMockActivityRepository(t)
	service := NewActivityService(ActivityServiceParams{
		ActivityRepo: activityRepo,
		Logger:       slog.Default(),
	})

	return service, activityRepo
}

func TestActivityService_RecordActivity(t *testing.T) {
	service, activityRepo := newActivityServiceForTest(t)
	ctx := context.Background()
	productID := uint(100)

	activityRepo.On("Create", ctx, mock.MatchedBy(func(a *entity.UserActivity) bool {
		return a.UserID == 7 && a.Action == entity.ActivityActionViewProduct &&
			a.ProductID != nil && *a.ProductID == 100 && !a.OccurredAt.IsZero()
	})).Return(nil)

	activity, err := service.RecordActivity(ctx, &usecase.RecordActivityInput{
		UserID:    7,
		Action:    entity.ActivityActionViewProduct,
		ProductID: &productID,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ActivityActionViewProduct, activity.Action)
}

func TestActivityService_RecordActivity_UnknownAction(t *testing.T) {
	service, _ := newActivityServiceForTest(t)

	_, err := service.RecordActivity(context.Background(), &usecase.RecordActivityInput{
		UserID: 7,
		Action: "teleport",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestActivityService_CorrectActivity_NoFieldsIsNoOp(t *testing.T) {
	service, activityRepo := newActivityServiceForTest(t)
	ctx := context.Background()

	activityRepo.On("FindByID", ctx, uint(20)).
		Return(&entity.UserActivity{ID: 20, UserID: 7, Action: entity.ActivityActionLogin}, nil)

	activity, err := service.CorrectActivity(ctx, 20, &usecase.CorrectActivityInput{})

	require.NoError(t, err)
	assert.Equal(t, uint(20), activity.ID)
	activityRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestActivityService_CorrectActivity_UpdatesAction(t *testing.T) {
	service, activityRepo := newActivityServiceForTest(t)
	ctx := context.Background()
	action := entity.ActivityActionAddToCart

	activityRepo.On("UpdateFields", ctx, uint(20), map[string]any{"action": "add_to_cart"}).Return(nil)
	activityRepo.On("FindByID", ctx, uint(20)).
		Return(&entity.UserActivity{ID: 20, UserID: 7, Action: action}, nil)

	activity, err := service.CorrectActivity(ctx, 20, &usecase.CorrectActivityInput{Action: &action})

	require.NoError(t, err)
	assert.Equal(t, action, activity.Action)
}
