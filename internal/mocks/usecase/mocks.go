// Package usecase provides hand-written testify mocks for the application
// usecase interfaces, for tests of components that sit above them.
package usecase

import (
	"context"
	"testing"

	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockNotificationUsecase is a testify mock for usecase.NotificationUsecase.
type MockNotificationUsecase struct {
	mock.Mock
}

func NewMockNotificationUsecase(t *testing.T) *MockNotificationUsecase {
	m := &MockNotificationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationUsecase) NotifyUser(ctx context.Context, input *usecase.NotifyUserInput) (*entity.Notification, error) {
	args := m.Called(ctx, input)
	if notification, ok := args.Get(0).(*entity.Notification); ok {
		return notification, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationUsecase) ListUserNotifications(ctx context.Context, userID uint) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID)
	if notifications, ok := args.Get(0).([]*entity.Notification); ok {
		return notifications, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationUsecase) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockSubscriptionUsecase is a testify mock for usecase.SubscriptionUsecase.
type MockSubscriptionUsecase struct {
	mock.Mock
}

func NewMockSubscriptionUsecase(t *testing.T) *MockSubscriptionUsecase {
	m := &MockSubscriptionUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSubscriptionUsecase) Subscribe(ctx context.Context, input *usecase.SubscribeInput) (*entity.VendorSubscription, error) {
	args := m.Called(ctx, input)
	if subscription, ok := args.Get(0).(*entity.VendorSubscription); ok {
		return subscription, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSubscriptionUsecase) GetActiveSubscription(ctx context.Context, vendorID uint) (*entity.VendorSubscription, error) {
	args := m.Called(ctx, vendorID)
	if subscription, ok := args.Get(0).(*entity.VendorSubscription); ok {
		return subscription, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSubscriptionUsecase) SweepExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}
