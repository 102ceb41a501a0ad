package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type subscriptionServiceMocks struct {
	subscriptionRepo *mockRepo.MockSubscriptionRepository
	vendorRepo       *mockRepo.MockVendorRepository
}

func newSubscriptionServiceForTest(t *testing.T) (usecase.SubscriptionUsecase, *subscriptionServiceMocks) {
	t.Helper()

	mocks := &subscriptionServiceMocks{
		subscriptionRepo: mockRepo.NewMockSubscriptionRepository(t),
		vendorRepo:       mockRepo.NewMockVendorRepository(t),
	}
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Subscriptions: mocks.subscriptionRepo,
		Vendors:       mocks.vendorRepo,
	})

	service := NewSubscriptionService(SubscriptionServiceParams{
		TxManager:        txManager,
		SubscriptionRepo: mocks.subscriptionRepo,
		Logger:           slog.Default(),
	})

	return service, mocks
}

func TestSubscriptionService_Subscribe_FirstSubscription(t *testing.T) {
	service, mocks := newSubscriptionServiceForTest(t)
	ctx := context.Background()

	mocks.vendorRepo.On("FindByID", ctx, uint(4)).Return(&entity.Vendor{ID: 4}, nil)
	mocks.subscriptionRepo.On("FindActiveByVendor", ctx, uint(4)).Return(nil, repository.ErrSubscriptionNotFound)
	mocks.subscriptionRepo.On("Create", ctx, mock.AnythingOfType("*entity.VendorSubscription")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.VendorSubscription).ID = 12
		}).
		Return(nil)
	mocks.vendorRepo.On("UpdateFields", ctx, uint(4), map[string]any{"subscription_id": uint(12)}).Return(nil)

	subscription, err := service.Subscribe(ctx, &usecase.SubscribeInput{
		VendorID: 4,
		Plan:     entity.PlanPro,
		Duration: 30 * 24 * time.Hour,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(12), subscription.ID)
	assert.True(t, subscription.IsActive)
	assert.Equal(t, entity.PlanPro, subscription.Plan)
	assert.WithinDuration(t, subscription.StartedAt.Add(30*24*time.Hour), subscription.ExpiresAt, time.Second)
}

func TestSubscriptionService_Subscribe_ReplacesActiveSubscription(t *testing.T) {
	service, mocks := newSubscriptionServiceForTest(t)
	ctx := context.Background()

	mocks.vendorRepo.On("FindByID", ctx, uint(4)).Return(&entity.Vendor{ID: 4}, nil)
	mocks.subscriptionRepo.On("FindActiveByVendor", ctx, uint(4)).
		Return(&entity.VendorSubscription{ID: 8, VendorID: 4, IsActive: true}, nil)
	mocks.subscriptionRepo.On("UpdateStatus", ctx, uint(8), false).Return(nil)
	mocks.subscriptionRepo.On("Create", ctx, mock.AnythingOfType("*entity.VendorSubscription")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.VendorSubscription).ID = 12
		}).
		Return(nil)
	mocks.vendorRepo.On("UpdateFields", ctx, uint(4), map[string]any{"subscription_id": uint(12)}).Return(nil)

	subscription, err := service.Subscribe(ctx, &usecase.SubscribeInput{
		VendorID: 4,
		Plan:     entity.PlanBasic,
		Duration: 24 * time.Hour,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(12), subscription.ID)
}

func TestSubscriptionService_Subscribe_RejectsBadInput(t *testing.T) {
	service, _ := newSubscriptionServiceForTest(t)
	ctx := context.Background()

	_, err := service.Subscribe(ctx, &usecase.SubscribeInput{VendorID: 4, Plan: "platinum", Duration: time.Hour})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = service.Subscribe(ctx, &usecase.SubscribeInput{VendorID: 4, Plan: entity.PlanBasic, Duration: 0})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSubscriptionService_Subscribe_VendorMissing(t *testing.T) {
	service, mocks := newSubscriptionServiceForTest(t)
	ctx := context.Background()

	mocks.vendorRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrVendorNotFound)

	_, err := service.Subscribe(ctx, &usecase.SubscribeInput{
		VendorID: 99,
		Plan:     entity.PlanBasic,
		Duration: time.Hour,
	})

	assert.ErrorIs(t, err, domainerrors.ErrVendorNotFound)
}

func TestSubscriptionService_GetActiveSubscription_None(t *testing.T) {
	service, mocks := newSubscriptionServiceForTest(t)
	ctx := context.Background()

	mocks.subscriptionRepo.On("FindActiveByVendor", ctx, uint(4)).Return(nil, repository.ErrSubscriptionNotFound)

	_, err := service.GetActiveSubscription(ctx, 4)

	assert.ErrorIs(t, err, domainerrors.ErrSubscriptionNotFound)
}

func TestSubscriptionService_SweepExpired(t *testing.T) {
	service, mocks := newSubscriptionServiceForTest(t)
	ctx := context.Background()

	mocks.subscriptionRepo.On("DeactivateExpired", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	swept, err := service.SweepExpired(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), swept)
}
