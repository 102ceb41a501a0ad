package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// RecordActivityInput defines the data required to append an activity entry.
type RecordActivityInput struct {
	UserID    uint
	Action    entity.ActivityAction
	ProductID *uint
}

// CorrectActivityInput defines an administrative correction to an activity
// entry. Nil fields are left untouched.
type CorrectActivityInput struct {
	Action    *entity.ActivityAction
	ProductID *uint
}

// ActivityUsecase defines the interface for the user activity trail. The
// trail is append-only in normal operation; correction and deletion exist
// for administrative cleanup only.
type ActivityUsecase interface {
	RecordActivity(ctx context.Context, input *RecordActivityInput) (*entity.UserActivity, error)
	ListUserActivities(ctx context.Context, userID uint) ([]*entity.UserActivity, error)
	CorrectActivity(ctx context.Context, id uint, input *CorrectActivityInput) (*entity.UserActivity, error)
	DeleteActivity(ctx context.Context, id uint) error
}
