package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// NotifyUserInput defines the data required to notify a user.
type NotifyUserInput struct {
	UserID uint
	Type   entity.NotificationType
	Title  string
	Body   string

	// DeviceTokens, when present, triggers a best-effort push on top of the
	// persisted notification.
	DeviceTokens []string
}

// NotificationUsecase defines the interface for user notifications.
type NotificationUsecase interface {
	// NotifyUser persists a notification and, when device tokens are
	// supplied, pushes it. Push failures are logged, never returned.
	NotifyUser(ctx context.Context, input *NotifyUserInput) (*entity.Notification, error)

	ListUserNotifications(ctx context.Context, userID uint) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id uint) error
}
