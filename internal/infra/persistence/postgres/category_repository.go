package postgres

import (
	"context"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// categoryRepository implements the repository.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create persists a new category.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrParentCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// FindByID retrieves a category with its parent and direct children attached.
func (repo *categoryRepository) FindByID(ctx context.Context, id uint) (*entity.Category, error) {
	var categoryM model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ?", id).
		First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM), nil
}

// FindChildren retrieves the direct children of a category, id ascending.
func (repo *categoryRepository) FindChildren(ctx context.Context, parentID uint) ([]*entity.Category, error) {
	var categoryMs []model.CategoryModel

	if err := repo.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("id ASC").
		Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find category children")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for i := range categoryMs {
		categories = append(categories, toCategoryDomain(&categoryMs[i]))
	}

	return categories, nil
}

// FindTopLevel retrieves all categories without a parent, optionally scoped
// to a shop, id ascending.
func (repo *categoryRepository) FindTopLevel(ctx context.Context, shopID *uint) ([]*entity.Category, error) {
	query := repo.db.WithContext(ctx).Where("parent_id IS NULL")
	if shopID != nil {
		query = query.Where("shop_id = ?", *shopID)
	}

	var categoryMs []model.CategoryModel
	if err := query.Order("id ASC").Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find top-level categories")
	}

	categories := make([]*entity.Category, 0, len(categoryMs))
	for i := range categoryMs {
		categories = append(categories, toCategoryDomain(&categoryMs[i]))
	}

	return categories, nil
}

// ExistsByNameAndShop performs a case-sensitive exact-match existence check
// scoped to a shop.
func (repo *categoryRepository) ExistsByNameAndShop(ctx context.Context, name string, shopID *uint) (bool, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("name = ?", name)
	if shopID != nil {
		query = query.Where("shop_id = ?", *shopID)
	} else {
		query = query.Where("shop_id IS NULL")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check category existence")
	}

	return count > 0, nil
}

// UpdateFields applies a partial update to a category row. An empty field
// map is a no-op.
func (repo *categoryRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrParentCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update category fields")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// Delete removes a category.
func (repo *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.CategoryModel{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete category")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCategoryDomain converts a GORM CategoryModel to a domain Category entity.
// It recurses into whatever part of the tree the source record carries;
// GORM preloads are depth-bounded, so the recursion terminates.
func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	children := make([]entity.Category, 0, len(data.Children))
	for i := range data.Children {
		children = append(children, *toCategoryDomain(&data.Children[i]))
	}

	products := make([]entity.Product, 0, len(data.Products))
	for i := range data.Products {
		products = append(products, *toProductDomain(&data.Products[i]))
	}

	return &entity.Category{
		ID:        data.ID,
		Name:      data.Name,
		ParentID:  data.ParentID,
		Parent:    toCategoryDomain(data.Parent),
		Children:  children,
		Products:  products,
		ShopID:    data.ShopID,
		Shop:      toShopDomain(data.Shop),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromCategoryDomain converts a domain Category entity to a GORM
// CategoryModel. Relations are stripped; only the parent pointer column is
// written.
func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	if data == nil {
		return nil
	}

	return &model.CategoryModel{
		ID:        data.ID,
		Name:      data.Name,
		ParentID:  data.ParentID,
		ShopID:    data.ShopID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
