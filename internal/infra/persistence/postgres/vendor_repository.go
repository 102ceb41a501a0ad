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

// vendorRepository implements the repository.VendorRepository interface using GORM.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{db: db}
}

// Create persists a new vendor profile. The unique index on user_id enforces
// the one-vendor-per-user invariant.
func (repo *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	vendorM := fromVendorDomain(vendor)

	if err := repo.db.WithContext(ctx).Create(vendorM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrVendorAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vendor")
	}

	vendor.ID = vendorM.ID
	vendor.CreatedAt = vendorM.CreatedAt
	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

// FindByID retrieves a vendor with its subscription and shop attached.
func (repo *vendorRepository) FindByID(ctx context.Context, id uint) (*entity.Vendor, error) {
	var vendorM model.VendorModel

	if err := repo.db.WithContext(ctx).
		Preload("Subscription").
		Preload("Shop").
		Where("id = ?", id).
		First(&vendorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by id")
	}

	return toVendorDomain(&vendorM), nil
}

// FindByUserID retrieves the vendor profile owned by a user.
func (repo *vendorRepository) FindByUserID(ctx context.Context, userID uint) (*entity.Vendor, error) {
	var vendorM model.VendorModel

	if err := repo.db.WithContext(ctx).
		Preload("Subscription").
		Preload("Shop").
		Where("user_id = ?", userID).
		First(&vendorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by user id")
	}

	return toVendorDomain(&vendorM), nil
}

// UpdateFields applies a partial update to a vendor row. An empty field map
// is a no-op.
func (repo *vendorRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update vendor fields")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// shopRepository implements the repository.ShopRepository interface using GORM.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// Create persists a new shop. The unique indexes on url and vendor_id keep
// storefront URLs distinct and shops one-per-vendor.
func (repo *shopRepository) Create(ctx context.Context, shop *entity.Shop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).Create(shopM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrShopAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVendorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shop")
	}

	shop.ID = shopM.ID
	shop.CreatedAt = shopM.CreatedAt
	shop.UpdatedAt = shopM.UpdatedAt

	return nil
}

// FindByID retrieves a shop with its vendor attached.
func (repo *shopRepository) FindByID(ctx context.Context, id uint) (*entity.Shop, error) {
	var shopM model.ShopModel

	if err := repo.db.WithContext(ctx).
		Preload("Vendor").
		Where("id = ?", id).
		First(&shopM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop by id")
	}

	return toShopDomain(&shopM), nil
}

// FindByVendorID retrieves the shop owned by a vendor.
func (repo *shopRepository) FindByVendorID(ctx context.Context, vendorID uint) (*entity.Shop, error) {
	var shopM model.ShopModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		First(&shopM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find shop by vendor id")
	}

	return toShopDomain(&shopM), nil
}

// UpdateFields applies a partial update to a shop row. An empty field map is
// a no-op.
func (repo *shopRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ShopModel{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrShopAlreadyExists
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update shop fields")
	}

	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toVendorDomain converts a GORM VendorModel to a domain Vendor entity.
func toVendorDomain(data *model.VendorModel) *entity.Vendor {
	if data == nil {
		return nil
	}

	products := make([]entity.Product, 0, len(data.Products))
	for i := range data.Products {
		products = append(products, *toProductDomain(&data.Products[i]))
	}

	return &entity.Vendor{
		ID:             data.ID,
		UserID:         data.UserID,
		StoreName:      data.StoreName,
		Products:       products,
		SubscriptionID: data.SubscriptionID,
		Subscription:   toSubscriptionDomain(data.Subscription),
		Shop:           toShopDomain(data.Shop),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromVendorDomain converts a domain Vendor entity to a GORM VendorModel.
func fromVendorDomain(data *entity.Vendor) *model.VendorModel {
	if data == nil {
		return nil
	}

	return &model.VendorModel{
		ID:             data.ID,
		UserID:         data.UserID,
		StoreName:      data.StoreName,
		SubscriptionID: data.SubscriptionID,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// toShopDomain converts a GORM ShopModel to a domain Shop entity.
func toShopDomain(data *model.ShopModel) *entity.Shop {
	if data == nil {
		return nil
	}

	products := make([]entity.Product, 0, len(data.Products))
	for i := range data.Products {
		products = append(products, *toProductDomain(&data.Products[i]))
	}

	orders := make([]entity.Order, 0, len(data.Orders))
	for i := range data.Orders {
		orders = append(orders, *toOrderDomain(&data.Orders[i]))
	}

	categories := make([]entity.Category, 0, len(data.Categories))
	for i := range data.Categories {
		categories = append(categories, *toCategoryDomain(&data.Categories[i]))
	}

	return &entity.Shop{
		ID:         data.ID,
		Name:       data.Name,
		URL:        data.URL,
		VendorID:   data.VendorID,
		Vendor:     toVendorDomain(data.Vendor),
		Products:   products,
		Orders:     orders,
		Categories: categories,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromShopDomain converts a domain Shop entity to a GORM ShopModel.
func fromShopDomain(data *entity.Shop) *model.ShopModel {
	if data == nil {
		return nil
	}

	return &model.ShopModel{
		ID:        data.ID,
		Name:      data.Name,
		URL:       data.URL,
		VendorID:  data.VendorID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
