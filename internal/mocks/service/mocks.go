// Package service provides hand-written testify mocks for the domain
// service interfaces, for use in service-level unit tests.
package service

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a testify mock for service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	args := m.Called(password)

	return args.Error(0)
}

// MockTokenService is a testify mock for service.TokenService.
type MockTokenService struct {
	mock.Mock
}

func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateTokens(userID uint, roles []string) (string, string, error) {
	args := m.Called(userID, roles)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) ValidateAccessToken(tokenString string) (uint, []string, error) {
	args := m.Called(tokenString)
	roles, _ := args.Get(1).([]string)

	return args.Get(0).(uint), roles, args.Error(2)
}

func (m *MockTokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// MockEventPublisher is a testify mock for service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishUserCreated(ctx context.Context, event *service.UserCreatedEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockOAuthAuthService is a testify mock for service.OAuthAuthService.
type MockOAuthAuthService struct {
	mock.Mock
}

func NewMockOAuthAuthService(t *testing.T) *MockOAuthAuthService {
	m := &MockOAuthAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, idToken)
	if user, ok := args.Get(0).(*service.OAuthUser); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockQRCodeService is a testify mock for service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateShopQR(shopID uint, shopURL string) ([]byte, error) {
	args := m.Called(shopID, shopURL)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockQRCodeService) ParseShopQR(qrData string) (uint, error) {
	args := m.Called(qrData)

	return args.Get(0).(uint), args.Error(1)
}

// MockPushService is a testify mock for service.PushService.
type MockPushService struct {
	mock.Mock
}

func NewMockPushService(t *testing.T) *MockPushService {
	m := &MockPushService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPushService) SendToToken(ctx context.Context, token, title, body string, data map[string]string) error {
	args := m.Called(ctx, token, title, body, data)

	return args.Error(0)
}

func (m *MockPushService) SendToTokens(ctx context.Context, tokens []string, title, body string, data map[string]string) (int, int, error) {
	args := m.Called(ctx, tokens, title, body, data)

	return args.Int(0), args.Int(1), args.Error(2)
}
