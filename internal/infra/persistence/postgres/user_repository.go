// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
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

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID with owned collections
// and the optional vendor profile attached.
func (repo *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("Addresses").
		Preload("Vendor").
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	// Map the persistence model back to a pure domain entity before returning.
	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	if err := repo.db.WithContext(ctx).
		Preload("Addresses").
		Preload("Vendor").
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Reflect generated values back into the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdateFields applies a partial update to a user row. An empty field map is
// a no-op by contract, never a full overwrite.
func (repo *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user fields")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// RecordLogin stamps the last-login time for a user.
func (repo *userRepository) RecordLogin(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_login", gorm.Expr("NOW()"))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to record login")
	}

	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.
// They are pure: relation fields are populated only from data attached to
// the source record, and an unloaded one-to-many relation always maps to an
// empty slice, never to an error.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	addresses := make([]entity.Address, 0, len(data.Addresses))
	for i := range data.Addresses {
		addresses = append(addresses, *toAddressDomain(&data.Addresses[i]))
	}

	orders := make([]entity.Order, 0, len(data.Orders))
	for i := range data.Orders {
		orders = append(orders, *toOrderDomain(&data.Orders[i]))
	}

	carts := make([]entity.Cart, 0, len(data.Carts))
	for i := range data.Carts {
		carts = append(carts, *toCartDomain(&data.Carts[i]))
	}

	reviews := make([]entity.Review, 0, len(data.Reviews))
	for i := range data.Reviews {
		reviews = append(reviews, *toReviewDomain(&data.Reviews[i]))
	}

	notifications := make([]entity.Notification, 0, len(data.Notifications))
	for i := range data.Notifications {
		notifications = append(notifications, *toNotificationDomain(&data.Notifications[i]))
	}

	activities := make([]entity.UserActivity, 0, len(data.Activities))
	for i := range data.Activities {
		activities = append(activities, *toActivityDomain(&data.Activities[i]))
	}

	return &entity.User{
		ID:              data.ID,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Name:            data.Name,
		Role:            entity.Role(data.Role),
		IsEmailVerified: data.IsEmailVerified,
		AuthProvider:    entity.AuthProvider(data.AuthProvider),
		GoogleID:        data.GoogleID,
		LastLogin:       data.LastLogin,
		Addresses:       addresses,
		Orders:          orders,
		Carts:           carts,
		Reviews:         reviews,
		Notifications:   notifications,
		Activities:      activities,
		Vendor:          toVendorDomain(data.Vendor),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for
// persistence. Nested relation structs are deliberately stripped: write
// operations accept scalar columns only.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:              data.ID,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Name:            data.Name,
		Role:            data.Role.String(),
		IsEmailVerified: data.IsEmailVerified,
		AuthProvider:    data.AuthProvider.String(),
		GoogleID:        data.GoogleID,
		LastLogin:       data.LastLogin,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// toAddressDomain converts a GORM AddressModel to a domain Address entity.
func toAddressDomain(data *model.AddressModel) *entity.Address {
	if data == nil {
		return nil
	}

	return &entity.Address{
		ID:          data.ID,
		UserID:      data.UserID,
		Label:       data.Label,
		FullAddress: data.FullAddress,
		IsPrimary:   data.IsPrimary,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toNotificationDomain converts a GORM NotificationModel to a domain Notification entity.
func toNotificationDomain(data *model.NotificationModel) *entity.Notification {
	if data == nil {
		return nil
	}

	return &entity.Notification{
		ID:        data.ID,
		UserID:    data.UserID,
		Type:      entity.NotificationType(data.Type),
		Title:     data.Title,
		Body:      data.Body,
		IsRead:    data.IsRead,
		CreatedAt: data.CreatedAt,
	}
}
