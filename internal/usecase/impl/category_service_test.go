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

func newCategoryServiceForTest(t *testing.T) (usecase.CategoryUsecase, *mockRepo.MockCategoryRepository) {
	t.Helper()

	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Categories: categoryRepo,
	})
	service := NewCategoryService(CategoryServiceParams{
		TxManager:    txManager,
		CategoryRepo: categoryRepo,
		Logger:       slog.Default(),
	})

	return service, categoryRepo
}

func uintPtr(v uint) *uint { return &v }

// chainCategory builds a node whose parent pointer is wired for ancestry
// walks in these tests.
func chainCategory(id uint, parentID *uint) *entity.Category {
	return &entity.Category{ID: id, Name: "node", ParentID: parentID, Children: []entity.Category{}}
}

func TestCategoryService_CreateCategory(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("ExistsByNameAndShop", ctx, "Books", (*uint)(nil)).Return(false, nil)
	categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Category).ID = 7
		}).
		Return(nil)

	created, err := service.CreateCategory(ctx, &usecase.CreateCategoryInput{Name: "Books"})

	require.NoError(t, err)
	assert.Equal(t, uint(7), created.ID)
	assert.Nil(t, created.ParentID)
}

func TestCategoryService_CreateCategory_ParentMissing(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(99)).Return(nil, repository.ErrCategoryNotFound)

	_, err := service.CreateCategory(ctx, &usecase.CreateCategoryInput{Name: "Books", ParentID: uintPtr(99)})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrParentCategoryNotFound)
}

func TestCategoryService_CreateCategory_EmptyName(t *testing.T) {
	service, _ := newCategoryServiceForTest(t)

	_, err := service.CreateCategory(context.Background(), &usecase.CreateCategoryInput{Name: ""})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCategoryService_SetParent_SelfIsRejected(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)

	err := service.SetParent(ctx, 1, uintPtr(1))

	assert.ErrorIs(t, err, domainerrors.ErrCategoryCycle)
}

func TestCategoryService_SetParent_DescendantIsRejected(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	// 1 <- 2 <- 3; moving 1 under 3 would close a cycle.
	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)
	categoryRepo.On("FindByID", ctx, uint(2)).Return(chainCategory(2, uintPtr(1)), nil)
	categoryRepo.On("FindByID", ctx, uint(3)).Return(chainCategory(3, uintPtr(2)), nil)

	err := service.SetParent(ctx, 1, uintPtr(3))

	assert.ErrorIs(t, err, domainerrors.ErrCategoryCycle)
}

func TestCategoryService_SetParent_ValidMovePersists(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(3)).Return(chainCategory(3, nil), nil)
	categoryRepo.On("FindByID", ctx, uint(2)).Return(chainCategory(2, uintPtr(1)), nil)
	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)
	categoryRepo.On("UpdateFields", ctx, uint(3), map[string]any{"parent_id": uintPtr(2)}).Return(nil)

	err := service.SetParent(ctx, 3, uintPtr(2))

	require.NoError(t, err)
}

func TestCategoryService_SetParent_NilPromotesToTopLevel(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(2)).Return(chainCategory(2, uintPtr(1)), nil)
	categoryRepo.On("UpdateFields", ctx, uint(2), map[string]any{"parent_id": (*uint)(nil)}).Return(nil)

	err := service.SetParent(ctx, 2, nil)

	require.NoError(t, err)
}

func TestCategoryService_SetParent_UsesTransactionScopedRepository(t *testing.T) {
	// Cycle validation is only sound when the ancestor walk and the parent
	// write see the same transaction; every repository call of the move must
	// go through the factory-provided repository, not the service's own.
	plainRepo := mockRepo.NewMockCategoryRepository(t)
	txRepo := mockRepo.NewMockCategoryRepository(t)
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Categories: txRepo,
	})
	service := NewCategoryService(CategoryServiceParams{
		TxManager:    txManager,
		CategoryRepo: plainRepo,
		Logger:       slog.Default(),
	})
	ctx := context.Background()

	txRepo.On("FindByID", ctx, uint(3)).Return(chainCategory(3, nil), nil)
	txRepo.On("FindByID", ctx, uint(2)).Return(chainCategory(2, uintPtr(1)), nil)
	txRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)
	txRepo.On("UpdateFields", ctx, uint(3), map[string]any{"parent_id": uintPtr(2)}).Return(nil)

	err := service.SetParent(ctx, 3, uintPtr(2))

	require.NoError(t, err)
	plainRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	plainRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryService_SetParent_FailedTransactionWritesNothing(t *testing.T) {
	categoryRepo := mockRepo.NewMockCategoryRepository(t)
	txManager := mockRepo.NewMockTransactionManager(&mockRepo.MockRepositoryFactory{
		Categories: categoryRepo,
	})
	txManager.FailWith = assert.AnError
	service := NewCategoryService(CategoryServiceParams{
		TxManager:    txManager,
		CategoryRepo: categoryRepo,
		Logger:       slog.Default(),
	})

	err := service.SetParent(context.Background(), 3, uintPtr(2))

	assert.ErrorIs(t, err, assert.AnError)
	categoryRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryService_GetHierarchy_RootFirst(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(3)).Return(chainCategory(3, uintPtr(2)), nil)
	categoryRepo.On("FindByID", ctx, uint(2)).Return(chainCategory(2, uintPtr(1)), nil)
	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)

	chain, err := service.GetHierarchy(ctx, 3)

	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, uint(1), chain[0].ID)
	assert.Equal(t, uint(2), chain[1].ID)
	assert.Equal(t, uint(3), chain[2].ID)
}

func TestCategoryService_GetHierarchy_SingleNode(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)

	chain, err := service.GetHierarchy(ctx, 1)

	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, uint(1), chain[0].ID)
}

func TestCategoryService_GetHierarchy_CorruptTreeHitsDepthCap(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	// A stored 1 <-> 2 loop can only come from writes that bypassed
	// SetParent; the walk must terminate and report it.
	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, uintPtr(2)), nil)
	categoryRepo.On("FindByID", ctx, uint(2)).Return(chainCategory(2, uintPtr(1)), nil)

	_, err := service.GetHierarchy(ctx, 1)

	assert.ErrorIs(t, err, domainerrors.ErrCycleDetected)
}

func TestCategoryService_GetTopLevel_ScopedToShop(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()
	shopID := uintPtr(5)

	categoryRepo.On("FindTopLevel", ctx, shopID).
		Return([]*entity.Category{chainCategory(1, nil), chainCategory(4, nil)}, nil)

	topLevel, err := service.GetTopLevel(ctx, shopID)

	require.NoError(t, err)
	require.Len(t, topLevel, 2)
	for _, category := range topLevel {
		assert.True(t, category.IsTopLevel())
	}
}

func TestCategoryService_UpdateCategory_NoFieldsIsNoOp(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("FindByID", ctx, uint(1)).Return(chainCategory(1, nil), nil)

	updated, err := service.UpdateCategory(ctx, 1, &usecase.UpdateCategoryInput{})

	require.NoError(t, err)
	assert.Equal(t, uint(1), updated.ID)
	categoryRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestCategoryService_CategoryExists(t *testing.T) {
	service, categoryRepo := newCategoryServiceForTest(t)
	ctx := context.Background()

	categoryRepo.On("ExistsByNameAndShop", ctx, "Books", (*uint)(nil)).Return(true, nil)

	exists, err := service.CategoryExists(ctx, "Books", nil)

	require.NoError(t, err)
	assert.True(t, exists)
}
