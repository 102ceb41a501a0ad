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

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("price and stock must be non-negative")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a product with its eagerly-loadable relations attached.
func (repo *productRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants").
		Preload("Promotions").
		Preload("Reviews").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// ListByShop retrieves all products of a shop, id ascending.
func (repo *productRepository) ListByShop(ctx context.Context, shopID uint) ([]*entity.Product, error) {
	var productMs []model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("shop_id = ?", shopID).
		Order("id ASC").
		Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by shop")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// ListByCategory retrieves all products filed under a category, id ascending.
func (repo *productRepository) ListByCategory(ctx context.Context, categoryID uint) ([]*entity.Product, error) {
	var productMs []model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by category")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// UpdateFields applies a partial update to a product row. An empty field map
// is a no-op.
func (repo *productRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("price and stock must be non-negative")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product fields")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AdjustStock atomically changes stock by delta. The WHERE guard keeps the
// column from going negative under concurrent checkouts.
func (repo *productRepository) AdjustStock(ctx context.Context, id uint, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to adjust product stock")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing product from a guard rejection.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.ProductModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to adjust product stock")
		}
		if count == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrInsufficientStock
	}

	return nil
}

// Delete removes a product.
func (repo *productRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	images := make([]entity.ProductImage, 0, len(data.Images))
	for i := range data.Images {
		images = append(images, *toProductImageDomain(&data.Images[i]))
	}

	variants := make([]entity.ProductVariant, 0, len(data.Variants))
	for i := range data.Variants {
		variants = append(variants, *toProductVariantDomain(&data.Variants[i]))
	}

	promotions := make([]entity.Promotion, 0, len(data.Promotions))
	for i := range data.Promotions {
		promotions = append(promotions, *toPromotionDomain(&data.Promotions[i]))
	}

	reviews := make([]entity.Review, 0, len(data.Reviews))
	for i := range data.Reviews {
		reviews = append(reviews, *toReviewDomain(&data.Reviews[i]))
	}

	cartItems := make([]entity.CartItem, 0, len(data.CartItems))
	for i := range data.CartItems {
		cartItems = append(cartItems, *toCartItemDomain(&data.CartItems[i]))
	}

	orderItems := make([]entity.OrderItem, 0, len(data.OrderItems))
	for i := range data.OrderItems {
		orderItems = append(orderItems, *toOrderItemDomain(&data.OrderItems[i]))
	}

	return &entity.Product{
		ID:         data.ID,
		Name:       data.Name,
		Price:      data.Price,
		Stock:      data.Stock,
		CategoryID: data.CategoryID,
		Category:   toCategoryDomain(data.Category),
		ShopID:     data.ShopID,
		Shop:       toShopDomain(data.Shop),
		VendorID:   data.VendorID,
		Vendor:     toVendorDomain(data.Vendor),
		Images:     images,
		Variants:   variants,
		Promotions: promotions,
		Reviews:    reviews,
		CartItems:  cartItems,
		OrderItems: orderItems,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:         data.ID,
		Name:       data.Name,
		Price:      data.Price,
		Stock:      data.Stock,
		CategoryID: data.CategoryID,
		ShopID:     data.ShopID,
		VendorID:   data.VendorID,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// toProductImageDomain converts a GORM ProductImageModel to a domain ProductImage entity.
func toProductImageDomain(data *model.ProductImageModel) *entity.ProductImage {
	if data == nil {
		return nil
	}

	return &entity.ProductImage{
		ID:        data.ID,
		ProductID: data.ProductID,
		URL:       data.URL,
		AltText:   data.AltText,
		Position:  data.Position,
	}
}

// toProductVariantDomain converts a GORM ProductVariantModel to a domain ProductVariant entity.
func toProductVariantDomain(data *model.ProductVariantModel) *entity.ProductVariant {
	if data == nil {
		return nil
	}

	return &entity.ProductVariant{
		ID:        data.ID,
		ProductID: data.ProductID,
		Name:      data.Name,
		SKU:       data.SKU,
		Price:     data.Price,
		Stock:     data.Stock,
	}
}

// toPromotionDomain converts a GORM PromotionModel to a domain Promotion entity.
func toPromotionDomain(data *model.PromotionModel) *entity.Promotion {
	if data == nil {
		return nil
	}

	return &entity.Promotion{
		ID:              data.ID,
		ProductID:       data.ProductID,
		Name:            data.Name,
		DiscountPercent: data.DiscountPercent,
		StartsAt:        data.StartsAt,
		EndsAt:          data.EndsAt,
	}
}

// toReviewDomain converts a GORM ReviewModel to a domain Review entity.
func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:        data.ID,
		UserID:    data.UserID,
		ProductID: data.ProductID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
