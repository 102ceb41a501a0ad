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

// activityRepository implements the repository.ActivityRepository interface using GORM.
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository is the constructor for activityRepository.
func NewActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// Create appends a new activity record.
func (repo *activityRepository) Create(ctx context.Context, activity *entity.UserActivity) error {
	activityM := fromActivityDomain(activity)

	if err := repo.db.WithContext(ctx).Create(activityM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record activity")
	}

	activity.ID = activityM.ID

	return nil
}

// FindByID retrieves a single activity record.
func (repo *activityRepository) FindByID(ctx context.Context, id uint) (*entity.UserActivity, error) {
	var activityM model.UserActivityModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&activityM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrActivityNotFound
		}

		return nil, errors.Wrap(err, "failed to find activity by id")
	}

	return toActivityDomain(&activityM), nil
}

// ListByUser retrieves a user's activity trail, newest first.
func (repo *activityRepository) ListByUser(ctx context.Context, userID uint) ([]*entity.UserActivity, error) {
	var activityMs []model.UserActivityModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&activityMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list activities by user")
	}

	activities := make([]*entity.UserActivity, 0, len(activityMs))
	for i := range activityMs {
		activities = append(activities, toActivityDomain(&activityMs[i]))
	}

	return activities, nil
}

// UpdateFields applies an administrative correction. An empty field map is a
// no-op.
func (repo *activityRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserActivityModel{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update activity fields")
	}

	if result.RowsAffected == 0 {
		return repository.ErrActivityNotFound
	}

	return nil
}

// Delete removes an activity record (administrative correction).
func (repo *activityRepository) Delete(ctx context.Context, id uint) error {
	result := repo.db.WithContext(ctx).Delete(&model.UserActivityModel{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete activity")
	}

	if result.RowsAffected == 0 {
		return repository.ErrActivityNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toActivityDomain converts a GORM UserActivityModel to a domain UserActivity entity.
func toActivityDomain(data *model.UserActivityModel) *entity.UserActivity {
	if data == nil {
		return nil
	}

	return &entity.UserActivity{
		ID:         data.ID,
		UserID:     data.UserID,
		Action:     entity.ActivityAction(data.Action),
		ProductID:  data.ProductID,
		OccurredAt: data.OccurredAt,
	}
}

// fromActivityDomain converts a domain UserActivity entity to a GORM UserActivityModel.
func fromActivityDomain(data *entity.UserActivity) *model.UserActivityModel {
	if data == nil {
		return nil
	}

	return &model.UserActivityModel{
		ID:         data.ID,
		UserID:     data.UserID,
		Action:     data.Action.String(),
		ProductID:  data.ProductID,
		OccurredAt: data.OccurredAt,
	}
}
