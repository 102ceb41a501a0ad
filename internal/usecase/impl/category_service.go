package impl

import (
	"context"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/constants"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface. It owns the
// acyclic invariant of the category tree: every mutation of a parent pointer
// goes through a bounded upward walk before it is persisted.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCategory creates a category, optionally under a parent. Duplicate
// names within a shop scope are allowed but logged; uniqueness is advisory,
// not a schema constraint.
func (srv *categoryService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name must not be empty")
	}

	if input.ParentID != nil {
		if _, err := srv.findCategory(ctx, *input.ParentID); err != nil {
			return nil, domainerrors.ErrParentCategoryNotFound.WrapMessage("parent category does not exist")
		}
	}

	exists, err := srv.categoryRepo.ExistsByNameAndShop(ctx, input.Name, input.ShopID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check category name")
	}
	if exists {
		srv.log(ctx).Warn("Creating category with duplicate name in scope", slog.String("name", input.Name))
	}

	category := &entity.Category{
		Name:     input.Name,
		ParentID: input.ParentID,
		ShopID:   input.ShopID,
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory returns a category with its parent and direct children attached.
func (srv *categoryService) GetCategory(ctx context.Context, id uint) (*entity.Category, error) {
	return srv.findCategory(ctx, id)
}

// UpdateCategory applies a partial update. Re-parenting goes through
// SetParent, never through here.
func (srv *categoryService) UpdateCategory(ctx context.Context, id uint, input *usecase.UpdateCategoryInput) (*entity.Category, error) {
	fields := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("category name must not be empty")
		}
		fields["name"] = *input.Name
	}

	if len(fields) > 0 {
		err := srv.categoryRepo.UpdateFields(ctx, id, fields)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to update category")
		}
	}

	return srv.findCategory(ctx, id)
}

// SetParent re-parents a category. A nil parentID promotes the category to
// top level. The move is rejected when the new parent is the category
// itself or any of its descendants, which would close a cycle. Existence
// checks, the ancestor walk and the parent write all run inside one
// transaction: two concurrent moves pointing categories at each other must
// not both pass validation against the other's pre-move chain.
func (srv *categoryService) SetParent(ctx context.Context, id uint, parentID *uint) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		if _, err := findCategoryIn(ctx, categoryRepo, id); err != nil {
			return err
		}

		if parentID != nil {
			if *parentID == id {
				return domainerrors.ErrCategoryCycle.WrapMessage("category cannot be its own parent")
			}
			if _, err := findCategoryIn(ctx, categoryRepo, *parentID); err != nil {
				return domainerrors.ErrParentCategoryNotFound.WrapMessage("parent category does not exist")
			}
			if err := srv.rejectIfAncestorOf(ctx, categoryRepo, id, *parentID); err != nil {
				return err
			}
		}

		err := categoryRepo.UpdateFields(ctx, id, map[string]any{"parent_id": parentID})
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
		}

		return err
	})
}

// rejectIfAncestorOf walks upward from candidate and fails when id appears
// in the chain. The walk is bounded: a chain deeper than the cap means the
// stored tree is already corrupt, which is reported as its own error.
func (srv *categoryService) rejectIfAncestorOf(ctx context.Context, categoryRepo repository.CategoryRepository, id, candidate uint) error {
	current := candidate
	for depth := 0; depth < constants.MaxCategoryDepth; depth++ {
		node, err := findCategoryIn(ctx, categoryRepo, current)
		if err != nil {
			return err
		}
		if node.ParentID == nil {
			return nil
		}
		if *node.ParentID == id {
			return domainerrors.ErrCategoryCycle.WrapMessage("move would make the category its own ancestor")
		}
		current = *node.ParentID
	}

	srv.log(ctx).Error("Category ancestor chain exceeds depth cap", slog.Uint64("category_id", uint64(candidate)))

	return domainerrors.ErrCycleDetected.WrapMessage("category tree is deeper than the supported maximum")
}

// GetChildren returns the direct children of a category, id ascending.
func (srv *categoryService) GetChildren(ctx context.Context, id uint) ([]*entity.Category, error) {
	if _, err := srv.findCategory(ctx, id); err != nil {
		return nil, err
	}

	children, err := srv.categoryRepo.FindChildren(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list children")
	}

	return children, nil
}

// GetHierarchy returns the ancestor chain of a category ordered root-first,
// ending with the category itself.
func (srv *categoryService) GetHierarchy(ctx context.Context, id uint) ([]*entity.Category, error) {
	chain := make([]*entity.Category, 0, 4)

	current := id
	for depth := 0; depth < constants.MaxCategoryDepth; depth++ {
		node, err := srv.findCategory(ctx, current)
		if err != nil {
			return nil, err
		}

		chain = append(chain, node)
		if node.ParentID == nil {
			// Walked leaf-to-root; the caller gets root-first.
			for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
				chain[i], chain[j] = chain[j], chain[i]
			}

			return chain, nil
		}
		current = *node.ParentID
	}

	srv.log(ctx).Error("Category ancestor chain exceeds depth cap", slog.Uint64("category_id", uint64(id)))

	return nil, domainerrors.ErrCycleDetected.WrapMessage("category tree is deeper than the supported maximum")
}

// GetTopLevel returns all parentless categories, optionally scoped to a shop.
func (srv *categoryService) GetTopLevel(ctx context.Context, shopID *uint) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindTopLevel(ctx, shopID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list top-level categories")
	}

	return categories, nil
}

// CategoryExists reports whether a category with the exact name exists in
// the given shop scope.
func (srv *categoryService) CategoryExists(ctx context.Context, name string, shopID *uint) (bool, error) {
	return srv.categoryRepo.ExistsByNameAndShop(ctx, name, shopID)
}

// DeleteCategory removes a category.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := srv.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
	}

	return err
}

func (srv *categoryService) findCategory(ctx context.Context, id uint) (*entity.Category, error) {
	return findCategoryIn(ctx, srv.categoryRepo, id)
}

func findCategoryIn(ctx context.Context, categoryRepo repository.CategoryRepository, id uint) (*entity.Category, error) {
	category, err := categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find category")
	}

	return category, nil
}
