package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrNotificationNotFound is returned when a notification does not exist.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository defines the operations for user notification persistence.
type NotificationRepository interface {
	// Create persists a new notification.
	Create(ctx context.Context, notification *entity.Notification) error

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID uint) ([]*entity.Notification, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, id uint) error
}
