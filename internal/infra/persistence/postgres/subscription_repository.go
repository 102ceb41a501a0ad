package postgres

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// subscriptionRepository implements the repository.SubscriptionRepository interface using GORM.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create persists a new subscription.
func (repo *subscriptionRepository) Create(ctx context.Context, subscription *entity.VendorSubscription) error {
	subscriptionM := fromSubscriptionDomain(subscription)

	if err := repo.db.WithContext(ctx).Create(subscriptionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrVendorNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	subscription.ID = subscriptionM.ID
	subscription.UpdatedAt = subscriptionM.UpdatedAt

	return nil
}

// FindByID retrieves a subscription by its unique ID.
func (repo *subscriptionRepository) FindByID(ctx context.Context, id uint) (*entity.VendorSubscription, error) {
	var subscriptionM model.VendorSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&subscriptionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription by id")
	}

	return toSubscriptionDomain(&subscriptionM), nil
}

// FindActiveByVendor retrieves the vendor's active subscription.
func (repo *subscriptionRepository) FindActiveByVendor(ctx context.Context, vendorID uint) (*entity.VendorSubscription, error) {
	var subscriptionM model.VendorSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Order("expires_at DESC").
		First(&subscriptionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find active subscription")
	}

	return toSubscriptionDomain(&subscriptionM), nil
}

// UpdateStatus sets the active flag of a subscription.
func (repo *subscriptionRepository) UpdateStatus(ctx context.Context, id uint, isActive bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorSubscriptionModel{}).
		Where("id = ?", id).
		Update("is_active", isActive)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update subscription status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// DeactivateExpired deactivates every active subscription whose expiry lies
// before now, returning the number of rows affected. Rows stay in place; the
// sweep never deletes.
func (repo *subscriptionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorSubscriptionModel{}).
		Where("is_active = ? AND expires_at < ?", true, now).
		Update("is_active", false)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to deactivate expired subscriptions")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toSubscriptionDomain converts a GORM VendorSubscriptionModel to a domain
// VendorSubscription entity.
func toSubscriptionDomain(data *model.VendorSubscriptionModel) *entity.VendorSubscription {
	if data == nil {
		return nil
	}

	return &entity.VendorSubscription{
		ID:        data.ID,
		VendorID:  data.VendorID,
		Plan:      entity.SubscriptionPlan(data.Plan),
		IsActive:  data.IsActive,
		StartedAt: data.StartedAt,
		ExpiresAt: data.ExpiresAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromSubscriptionDomain converts a domain VendorSubscription entity to a
// GORM VendorSubscriptionModel.
func fromSubscriptionDomain(data *entity.VendorSubscription) *model.VendorSubscriptionModel {
	if data == nil {
		return nil
	}

	return &model.VendorSubscriptionModel{
		ID:        data.ID,
		VendorID:  data.VendorID,
		Plan:      data.Plan.String(),
		IsActive:  data.IsActive,
		StartedAt: data.StartedAt,
		ExpiresAt: data.ExpiresAt,
		UpdatedAt: data.UpdatedAt,
	}
}
