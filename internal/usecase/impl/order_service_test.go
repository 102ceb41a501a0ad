package impl

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	mockSvc "marketplace/internal/mocks/service"
	mockUC "marketplace/internal/mocks/usecase"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceMocks struct {
	orderRepo      *mockRepo.MockOrderRepository
	cartRepo       *mockRepo.MockCartRepository
	productRepo    *mockRepo.MockProductRepository
	activityRepo   *mockRepo.MockActivityRepository
	eventPublisher *mockSvc.MockEventPublisher
	notifier       *mockUC.MockNotificationUsecase
}

func newOrderServiceForTest(t *testing.T) (usecase.OrderUsecase, *orderServiceMocks) {
	t.Helper()

	mocks := &orderServiceMocks{
		orderRepo:      mockRepo.NewMockOrderRepository(t),
		cartRepo:       mockRepo.NewMockCartRepository(t),
		productRepo:    mockRepo.NewMockProductRepository(t),
		activityRepo:   mockRepo.NewMockActivityRepository(t),
		eventPublisher: mockSvc.NewMockEventPublisher(t),
		notifier:       mockUC.NewMockNotificationUsecase(t),
	}
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Orders:   mocks.orderRepo,
		Carts:    mocks.cartRepo,
		Products: mocks.productRepo,
	})

	service := NewOrderService(OrderServiceParams{
		TxManager:      txManager,
		OrderRepo:      mocks.orderRepo,
		ActivityRepo:   mocks.activityRepo,
		EventPublisher: mocks.eventPublisher,
		Notifier:       mocks.notifier,
		Logger:         slog.Default(),
	})

	return service, mocks
}

func checkoutCart() *entity.Cart {
	return &entity.Cart{
		ID:       3,
		UserID:   7,
		IsActive: true,
		Items: []entity.CartItem{
			{ID: 10, CartID: 3, ProductID: 100, Quantity: 2, Product: &entity.Product{ID: 100, Price: 19.90, ShopID: 5}},
			{ID: 11, CartID: 3, ProductID: 101, Quantity: 1, Product: &entity.Product{ID: 101, Price: 5.00, ShopID: 5}},
		},
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(checkoutCart(), nil)
	mocks.productRepo.On("AdjustStock", ctx, uint(100), -2).Return(nil)
	mocks.productRepo.On("AdjustStock", ctx, uint(101), -1).Return(nil)
	mocks.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Order).ID = 55
		}).
		Return(nil)
	mocks.orderRepo.On("AddPayment", ctx, mock.MatchedBy(func(p *entity.Payment) bool {
		return p.OrderID == 55 && p.Method == "card" && math.Abs(p.Amount-44.80) < 0.001
	})).Return(nil)
	mocks.cartRepo.On("ClearItems", ctx, uint(3)).Return(nil)
	mocks.cartRepo.On("Deactivate", ctx, uint(3)).Return(nil)
	mocks.eventPublisher.On("PublishOrderPlaced", ctx, mock.AnythingOfType("*service.OrderPlacedEvent")).Return(nil)
	mocks.activityRepo.On("Create", ctx, mock.MatchedBy(func(a *entity.UserActivity) bool {
		return a.UserID == 7 && a.Action == entity.ActivityActionPurchase
	})).Return(nil)
	mocks.notifier.On("NotifyUser", ctx, mock.MatchedBy(func(in *usecase.NotifyUserInput) bool {
		return in.UserID == 7 && in.Type == entity.NotificationTypeOrderStatus
	})).Return(&entity.Notification{ID: 1}, nil)

	order, err := service.PlaceOrder(ctx, 7, &usecase.PlaceOrderInput{PaymentMethod: "card"})

	require.NoError(t, err)
	assert.Equal(t, uint(55), order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, uint(5), order.ShopID)
	assert.InDelta(t, 44.80, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 19.90, order.Items[0].UnitPrice, 0.001)
}

func TestOrderService_PlaceOrder_EmptyCart(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).
		Return(&entity.Cart{ID: 3, UserID: 7, IsActive: true, Items: []entity.CartItem{}}, nil)

	_, err := service.PlaceOrder(ctx, 7, &usecase.PlaceOrderInput{PaymentMethod: "card"})

	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
	mocks.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_MixedShopCartRejected(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	cart := checkoutCart()
	cart.Items[1].Product.ShopID = 9

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(cart, nil)

	_, err := service.PlaceOrder(ctx, 7, &usecase.PlaceOrderInput{PaymentMethod: "card"})

	assert.ErrorIs(t, err, domainerrors.ErrMixedShopCart)
	mocks.productRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, mock.Anything, mock.Anything)
	mocks.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_NoActiveCart(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(nil, repository.ErrCartNotFound)

	_, err := service.PlaceOrder(ctx, 7, &usecase.PlaceOrderInput{PaymentMethod: "card"})

	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(checkoutCart(), nil)
	mocks.productRepo.On("AdjustStock", ctx, uint(100), -2).Return(repository.ErrInsufficientStock)

	_, err := service.PlaceOrder(ctx, 7, &usecase.PlaceOrderInput{PaymentMethod: "card"})

	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	mocks.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_PublishFailureIsSwallowed(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(checkoutCart(), nil)
	mocks.productRepo.On("AdjustStock", ctx, mock.AnythingOfType("uint"), mock.AnythingOfType("int")).Return(nil)
	mocks.orderRepo.On("Create", ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	mocks.orderRepo.On("AddPayment", ctx, mock.AnythingOfType("*entity.Payment")).Return(nil)
	mocks.cartRepo.On("ClearItems", ctx, uint(3)).Return(nil)
	mocks.cartRepo.On("Deactivate", ctx, uint(3)).Return(nil)
	mocks.eventPublisher.On("PublishOrderPlaced", ctx, mock.AnythingOfType("*service.OrderPlacedEvent")).
		Return(errors.New("broker unavailable"))
	mocks.activityRepo.On("Create", ctx, mock.AnythingOfType("*entity.UserActivity")).Return(nil)
	mocks.notifier.On("NotifyUser", ctx, mock.AnythingOfType("*usecase.NotifyUserInput")).
		Return(&entity.Notification{ID: 1}, nil)

	_, err := service.PlaceOrder(ctx, 7, &usecase.PlaceOrderInput{PaymentMethod: "card"})

	require.NoError(t, err)
}

func TestOrderService_UpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    entity.OrderStatus
		to      entity.OrderStatus
		allowed bool
	}{
		{name: "pending to shipped", from: entity.OrderStatusPending, to: entity.OrderStatusShipped, allowed: true},
		{name: "pending to cancelled", from: entity.OrderStatusPending, to: entity.OrderStatusCancelled, allowed: true},
		{name: "shipped to delivered", from: entity.OrderStatusShipped, to: entity.OrderStatusDelivered, allowed: true},
		{name: "pending to delivered skips shipping", from: entity.OrderStatusPending, to: entity.OrderStatusDelivered, allowed: false},
		{name: "delivered is terminal", from: entity.OrderStatusDelivered, to: entity.OrderStatusShipped, allowed: false},
		{name: "cancelled is terminal", from: entity.OrderStatusCancelled, to: entity.OrderStatusPending, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, mocks := newOrderServiceForTest(t)
			ctx := context.Background()

			mocks.orderRepo.On("FindByID", ctx, uint(55)).
				Return(&entity.Order{ID: 55, UserID: 7, Status: tt.from}, nil)
			if tt.allowed {
				mocks.orderRepo.On("UpdateStatus", ctx, uint(55), tt.to).Return(nil)
				mocks.notifier.On("NotifyUser", ctx, mock.AnythingOfType("*usecase.NotifyUserInput")).
					Return(&entity.Notification{ID: 1}, nil)
			}

			order, err := service.UpdateStatus(ctx, 55, tt.to)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, order.Status)
			} else {
				assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
			}
		})
	}
}

func TestOrderService_CancelOrder_RestoresStockAndRefunds(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()
	order := &entity.Order{
		ID:     55,
		UserID: 7,
		Status: entity.OrderStatusPending,
		Items: []entity.OrderItem{
			{ProductID: 100, Quantity: 2, UnitPrice: 19.90},
		},
		Payments: []entity.Payment{{OrderID: 55, Amount: 39.80}},
	}

	mocks.orderRepo.On("FindByID", ctx, uint(55)).Return(order, nil)
	mocks.orderRepo.On("UpdateStatus", ctx, uint(55), entity.OrderStatusCancelled).Return(nil)
	mocks.productRepo.On("AdjustStock", ctx, uint(100), 2).Return(nil)
	mocks.orderRepo.On("AddRefund", ctx, mock.MatchedBy(func(r *entity.Refund) bool {
		return r.OrderID == 55 && r.Amount == 39.80 && r.Reason == "changed my mind"
	})).Return(nil)
	mocks.notifier.On("NotifyUser", ctx, mock.AnythingOfType("*usecase.NotifyUserInput")).
		Return(&entity.Notification{ID: 1}, nil)

	cancelled, err := service.CancelOrder(ctx, 55, "changed my mind")

	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	require.Len(t, cancelled.Refunds, 1)
}

func TestOrderService_CancelOrder_DeliveredIsRejected(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()

	mocks.orderRepo.On("FindByID", ctx, uint(55)).
		Return(&entity.Order{ID: 55, UserID: 7, Status: entity.OrderStatusDelivered}, nil)

	_, err := service.CancelOrder(ctx, 55, "too late")

	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
}

func TestOrderService_CancelOrder_UnpaidOrderSkipsRefund(t *testing.T) {
	service, mocks := newOrderServiceForTest(t)
	ctx := context.Background()
	order := &entity.Order{ID: 55, UserID: 7, Status: entity.OrderStatusPending, Items: []entity.OrderItem{}, Payments: []entity.Payment{}}

	mocks.orderRepo.On("FindByID", ctx, uint(55)).Return(order, nil)
	mocks.orderRepo.On("UpdateStatus", ctx, uint(55), entity.OrderStatusCancelled).Return(nil)
	mocks.notifier.On("NotifyUser", ctx, mock.AnythingOfType("*usecase.NotifyUserInput")).
		Return(&entity.Notification{ID: 1}, nil)

	_, err := service.CancelOrder(ctx, 55, "never paid")

	require.NoError(t, err)
	mocks.orderRepo.AssertNotCalled(t, "AddRefund", mock.Anything, mock.Anything)
}
