// Package repository provides hand-written testify mocks for the domain
// repository interfaces, for use in service-level unit tests.
package repository

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// MockRepositoryFactory hands out the repository mocks configured on it.
// Used together with MockTransactionManager to run transactional closures
// against mocks.
type MockRepositoryFactory struct {
	Users         *MockUserRepository
	Categories    *MockCategoryRepository
	Products      *MockProductRepository
	Orders        *MockOrderRepository
	Carts         *MockCartRepository
	Vendors       *MockVendorRepository
	Shops         *MockShopRepository
	Subscriptions *MockSubscriptionRepository
}

func (f *MockRepositoryFactory) UserRepo() repository.UserRepository         { return f.Users }
func (f *MockRepositoryFactory) CategoryRepo() repository.CategoryRepository { return f.Categories }
func (f *MockRepositoryFactory) ProductRepo() repository.ProductRepository   { return f.Products }
func (f *MockRepositoryFactory) OrderRepo() repository.OrderRepository       { return f.Orders }
func (f *MockRepositoryFactory) CartRepo() repository.CartRepository         { return f.Carts }
func (f *MockRepositoryFactory) VendorRepo() repository.VendorRepository     { return f.Vendors }
func (f *MockRepositoryFactory) ShopRepo() repository.ShopRepository         { return f.Shops }
func (f *MockRepositoryFactory) SubscriptionRepo() repository.SubscriptionRepository {
	return f.Subscriptions
}

// MockTransactionManager runs transactional closures against the configured
// factory. When FailWith is set the closure never runs and the error is
// returned, simulating a failed begin.
type MockTransactionManager struct {
	Factory  *MockRepositoryFactory
	FailWith error
}

func NewMockTransactionManager(factory *MockRepositoryFactory) *MockTransactionManager {
	return &MockTransactionManager{Factory: factory}
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.FailWith != nil {
		return m.FailWith
	}

	return fn(m.Factory)
}

// MockUserRepository is a testify mock for repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

func (m *MockUserRepository) RecordLogin(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockCategoryRepository is a testify mock for repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func NewMockCategoryRepository(t *testing.T) *MockCategoryRepository {
	m := &MockCategoryRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)

	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*entity.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) FindChildren(ctx context.Context, parentID uint) ([]*entity.Category, error) {
	args := m.Called(ctx, parentID)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) FindTopLevel(ctx context.Context, shopID *uint) ([]*entity.Category, error) {
	args := m.Called(ctx, shopID)
	if categories, ok := args.Get(0).([]*entity.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) ExistsByNameAndShop(ctx context.Context, name string, shopID *uint) (bool, error) {
	args := m.Called(ctx, name, shopID)

	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockProductRepository is a testify mock for repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*entity.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListByShop(ctx context.Context, shopID uint) ([]*entity.Product, error) {
	args := m.Called(ctx, shopID)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*entity.Product, error) {
	args := m.Called(ctx, categoryID)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	args := m.Called(ctx, id, delta)

	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockOrderRepository is a testify mock for repository.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func NewMockOrderRepository(t *testing.T) *MockOrderRepository {
	m := &MockOrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*entity.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*entity.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error {
	args := m.Called(ctx, id, status)

	return args.Error(0)
}

func (m *MockOrderRepository) AddPayment(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)

	return args.Error(0)
}

func (m *MockOrderRepository) AddRefund(ctx context.Context, refund *entity.Refund) error {
	args := m.Called(ctx, refund)

	return args.Error(0)
}

// MockCartRepository is a testify mock for repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func NewMockCartRepository(t *testing.T) *MockCartRepository {
	m := &MockCartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCartRepository) FindActiveByUser(ctx context.Context, userID uint) (*entity.Cart, error) {
	args := m.Called(ctx, userID)
	if cart, ok := args.Get(0).(*entity.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	args := m.Called(ctx, cart)

	return args.Error(0)
}

func (m *MockCartRepository) AddItem(ctx context.Context, item *entity.CartItem) error {
	args := m.Called(ctx, item)

	return args.Error(0)
}

func (m *MockCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	args := m.Called(ctx, itemID, quantity)

	return args.Error(0)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, itemID uint) error {
	args := m.Called(ctx, itemID)

	return args.Error(0)
}

func (m *MockCartRepository) ClearItems(ctx context.Context, cartID uint) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

func (m *MockCartRepository) Deactivate(ctx context.Context, cartID uint) error {
	args := m.Called(ctx, cartID)

	return args.Error(0)
}

// MockVendorRepository is a testify mock for repository.VendorRepository.
type MockVendorRepository struct {
	mock.Mock
}

func NewMockVendorRepository(t *testing.T) *MockVendorRepository {
	m := &MockVendorRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	args := m.Called(ctx, vendor)

	return args.Error(0)
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uint) (*entity.Vendor, error) {
	args := m.Called(ctx, id)
	if vendor, ok := args.Get(0).(*entity.Vendor); ok {
		return vendor, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) FindByUserID(ctx context.Context, userID uint) (*entity.Vendor, error) {
	args := m.Called(ctx, userID)
	if vendor, ok := args.Get(0).(*entity.Vendor); ok {
		return vendor, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockVendorRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

// MockShopRepository is a testify mock for repository.ShopRepository.
type MockShopRepository struct {
	mock.Mock
}

func NewMockShopRepository(t *testing.T) *MockShopRepository {
	m := &MockShopRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockShopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	args := m.Called(ctx, shop)

	return args.Error(0)
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uint) (*entity.Shop, error) {
	args := m.Called(ctx, id)
	if shop, ok := args.Get(0).(*entity.Shop); ok {
		return shop, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockShopRepository) FindByVendorID(ctx context.Context, vendorID uint) (*entity.Shop, error) {
	args := m.Called(ctx, vendorID)
	if shop, ok := args.Get(0).(*entity.Shop); ok {
		return shop, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockShopRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

// MockSubscriptionRepository is a testify mock for repository.SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func NewMockSubscriptionRepository(t *testing.T) *MockSubscriptionRepository {
	m := &MockSubscriptionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *entity.VendorSubscription) error {
	args := m.Called(ctx, subscription)

	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uint) (*entity.VendorSubscription, error) {
	args := m.Called(ctx, id)
	if subscription, ok := args.Get(0).(*entity.VendorSubscription); ok {
		return subscription, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSubscriptionRepository) FindActiveByVendor(ctx context.Context, vendorID uint) (*entity.VendorSubscription, error) {
	args := m.Called(ctx, vendorID)
	if subscription, ok := args.Get(0).(*entity.VendorSubscription); ok {
		return subscription, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id uint, isActive bool) error {
	args := m.Called(ctx, id, isActive)

	return args.Error(0)
}

func (m *MockSubscriptionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)

	return args.Get(0).(int64), args.Error(1)
}

// MockActivityRepository is a testify mock for repository.ActivityRepository.
type MockActivityRepository struct {
	mock.Mock
}

func NewMockActivityRepository(t *testing.T) *MockActivityRepository {
	m := &MockActivityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *entity.UserActivity) error {
	args := m.Called(ctx, activity)

	return args.Error(0)
}

func (m *MockActivityRepository) FindByID(ctx context.Context, id uint) (*entity.UserActivity, error) {
	args := m.Called(ctx, id)
	if activity, ok := args.Get(0).(*entity.UserActivity); ok {
		return activity, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockActivityRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.UserActivity, error) {
	args := m.Called(ctx, userID)
	if activities, ok := args.Get(0).([]*entity.UserActivity); ok {
		return activities, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockActivityRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

func (m *MockActivityRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockNotificationRepository is a testify mock for repository.NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository(t *testing.T) *MockNotificationRepository {
	m := &MockNotificationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	args := m.Called(ctx, notification)

	return args.Error(0)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.Notification, error) {
	args := m.Called(ctx, userID)
	if notifications, ok := args.Get(0).([]*entity.Notification); ok {
		return notifications, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}
