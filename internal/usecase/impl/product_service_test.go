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

type productServiceMocks struct {
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
	shopRepo     *mockRepo.MockShopRepository
}

func newProductServiceForTest(t *testing.T) (usecase.ProductUsecase, *productServiceMocks) {
	t.Helper()

	mocks := &productServiceMocks{
		productRepo:  mockRepo.NewMockProductRepository(t),
		categoryRepo: mockRepo.NewMockCategoryRepository(t),
		shopRepo:     mockRepo.NewMockShopRepository(t),
	}

	service := NewProductService(ProductServiceParams{
		ProductRepo:  mocks.productRepo,
		CategoryRepo: mocks.categoryRepo,
		ShopRepo:     mocks.shopRepo,
		Logger:       slog.Default(),
	})

	return service, mocks
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.categoryRepo.On("FindByID", ctx, uint(3)).Return(&entity.Category{ID: 3, Name: "Ceramics"}, nil)
	mocks.shopRepo.On("FindByID", ctx, uint(5)).Return(&entity.Shop{ID: 5}, nil)
	mocks.productRepo.On("Create", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		return p.Name == "Glazed vase" && p.CategoryID == 3 && p.ShopID == 5 && p.Stock == 12
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Product).ID = 41
	}).Return(nil)

	product, err := service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:       "Glazed vase",
		Price:      34.50,
		Stock:      12,
		CategoryID: 3,
		ShopID:     5,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(41), product.ID)
}

func TestProductService_CreateProduct_RejectsBadInput(t *testing.T) {
	service, _ := newProductServiceForTest(t)
	ctx := context.Background()

	_, err := service.CreateProduct(ctx, &usecase.CreateProductInput{Name: "", Price: 1, CategoryID: 3, ShopID: 5})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = service.CreateProduct(ctx, &usecase.CreateProductInput{Name: "Vase", Price: -1, CategoryID: 3, ShopID: 5})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = service.CreateProduct(ctx, &usecase.CreateProductInput{Name: "Vase", Price: 1, Stock: -4, CategoryID: 3, ShopID: 5})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_CreateProduct_CategoryMissing(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.categoryRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrCategoryNotFound)

	_, err := service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:       "Vase",
		Price:      10,
		CategoryID: 99,
		ShopID:     5,
	})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestProductService_CreateProduct_ShopMissing(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.categoryRepo.On("FindByID", ctx, uint(3)).Return(&entity.Category{ID: 3}, nil)
	mocks.shopRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrShopNotFound)

	_, err := service.CreateProduct(ctx, &usecase.CreateProductInput{
		Name:       "Vase",
		Price:      10,
		CategoryID: 3,
		ShopID:     99,
	})

	assert.ErrorIs(t, err, domainerrors.ErrShopNotFound)
}

func TestProductService_GetProduct_NotFound(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.productRepo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrProductNotFound)

	_, err := service.GetProduct(ctx, 404)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_UpdateProduct_PartialFields(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	price := 29.90
	mocks.productRepo.On("UpdateFields", ctx, uint(41), map[string]any{"price": price}).Return(nil)
	mocks.productRepo.On("FindByID", ctx, uint(41)).
		Return(&entity.Product{ID: 41, Name: "Glazed vase", Price: price}, nil)

	product, err := service.UpdateProduct(ctx, 41, &usecase.UpdateProductInput{Price: &price})

	require.NoError(t, err)
	assert.InDelta(t, price, product.Price, 0.001)
}

func TestProductService_UpdateProduct_NoFieldsIsNoOp(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.productRepo.On("FindByID", ctx, uint(41)).Return(&entity.Product{ID: 41}, nil)

	_, err := service.UpdateProduct(ctx, 41, &usecase.UpdateProductInput{})

	require.NoError(t, err)
	mocks.productRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_UpdateProduct_CategoryChangeValidated(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	categoryID := uint(99)
	mocks.categoryRepo.On("FindByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	_, err := service.UpdateProduct(ctx, 41, &usecase.UpdateProductInput{CategoryID: &categoryID})

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestProductService_ListShopProducts(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.productRepo.On("ListByShop", ctx, uint(5)).
		Return([]*entity.Product{{ID: 41}, {ID: 42}}, nil)

	products, err := service.ListShopProducts(ctx, 5)

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	service, mocks := newProductServiceForTest(t)
	ctx := context.Background()

	mocks.productRepo.On("Delete", ctx, uint(404)).Return(repository.ErrProductNotFound)

	err := service.DeleteProduct(ctx, 404)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
