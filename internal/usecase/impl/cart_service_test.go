package impl

import (
	"context"
	"log/slog"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartServiceMocks struct {
	cartRepo    *mockRepo.MockCartRepository
	productRepo *mockRepo.MockProductRepository
}

func newCartServiceForTest(t *testing.T) (usecase.CartUsecase, *cartServiceMocks) {
	t.Helper()

	mocks := &cartServiceMocks{
		cartRepo:    mockRepo.NewMockCartRepository(t),
		productRepo: mockRepo.NewMockProductRepository(t),
	}

	service := NewCartService(CartServiceParams{
		CartRepo:    mocks.cartRepo,
		ProductRepo: mocks.productRepo,
		Logger:      slog.Default(),
	})

	return service, mocks
}

func TestCartService_GetActiveCart_CreatesOnFirstUse(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(nil, repository.ErrCartNotFound)
	mocks.cartRepo.On("Create", ctx, mock.MatchedBy(func(c *entity.Cart) bool {
		return c.UserID == 7 && c.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Cart).ID = 3
	}).Return(nil)

	cart, err := service.GetActiveCart(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, uint(3), cart.ID)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	emptyCart := &entity.Cart{ID: 3, UserID: 7, IsActive: true, Items: []entity.CartItem{}}
	filledCart := &entity.Cart{ID: 3, UserID: 7, IsActive: true, Items: []entity.CartItem{
		{ID: 10, CartID: 3, ProductID: 100, Quantity: 2},
	}}

	mocks.productRepo.On("FindByID", ctx, uint(100)).Return(&entity.Product{ID: 100, Stock: 5}, nil)
	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(emptyCart, nil).Once()
	mocks.cartRepo.On("AddItem", ctx, mock.MatchedBy(func(item *entity.CartItem) bool {
		return item.CartID == 3 && item.ProductID == 100 && item.Quantity == 2
	})).Return(nil)
	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(filledCart, nil).Once()

	cart, err := service.AddItem(ctx, 7, &usecase.AddCartItemInput{ProductID: 100, Quantity: 2})

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartService_AddItem_ExistingLineAccumulates(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	cartWithLine := &entity.Cart{ID: 3, UserID: 7, IsActive: true, Items: []entity.CartItem{
		{ID: 10, CartID: 3, ProductID: 100, Quantity: 2},
	}}

	mocks.productRepo.On("FindByID", ctx, uint(100)).Return(&entity.Product{ID: 100, Stock: 5}, nil)
	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(cartWithLine, nil)
	mocks.cartRepo.On("UpdateItemQuantity", ctx, uint(10), 3).Return(nil)

	_, err := service.AddItem(ctx, 7, &usecase.AddCartItemInput{ProductID: 100, Quantity: 1})

	require.NoError(t, err)
	mocks.cartRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()

	mocks.productRepo.On("FindByID", ctx, uint(999)).Return(nil, repository.ErrProductNotFound)

	_, err := service.AddItem(ctx, 7, &usecase.AddCartItemInput{ProductID: 999, Quantity: 1})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestCartService_AddItem_NonPositiveQuantity(t *testing.T) {
	service, _ := newCartServiceForTest(t)

	_, err := service.AddItem(context.Background(), 7, &usecase.AddCartItemInput{ProductID: 100, Quantity: 0})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCartService_UpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	cartWithLine := &entity.Cart{ID: 3, UserID: 7, IsActive: true, Items: []entity.CartItem{
		{ID: 10, CartID: 3, ProductID: 100, Quantity: 2},
	}}

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(cartWithLine, nil)
	mocks.cartRepo.On("RemoveItem", ctx, uint(10)).Return(nil)

	_, err := service.UpdateItemQuantity(ctx, 7, 10, 0)

	require.NoError(t, err)
	mocks.cartRepo.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_UpdateItemQuantity_ForeignItemIsRejected(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()
	cartWithoutItem := &entity.Cart{ID: 3, UserID: 7, IsActive: true, Items: []entity.CartItem{}}

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(cartWithoutItem, nil)

	_, err := service.UpdateItemQuantity(ctx, 7, 999, 1)

	assert.ErrorIs(t, err, domainerrors.ErrCartNotFound)
}

func TestCartService_ClearCart_NoActiveCartIsNoOp(t *testing.T) {
	service, mocks := newCartServiceForTest(t)
	ctx := context.Background()

	mocks.cartRepo.On("FindActiveByUser", ctx, uint(7)).Return(nil, repository.ErrCartNotFound)

	err := service.ClearCart(ctx, 7)

	require.NoError(t, err)
	mocks.cartRepo.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
}
