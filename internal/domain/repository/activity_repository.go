package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrActivityNotFound is returned when an activity record does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityRepository defines the operations for the append-only user
// activity log. Update and Delete exist only for administrative correction.
type ActivityRepository interface {
	// Create appends a new activity record.
	Create(ctx context.Context, activity *entity.UserActivity) error

	// FindByID retrieves a single activity record.
	FindByID(ctx context.Context, id uint) (*entity.UserActivity, error)

	// ListByUser retrieves a user's activity trail, newest first.
	ListByUser(ctx context.Context, userID uint) ([]*entity.UserActivity, error)

	// UpdateFields applies an administrative correction. An empty field map
	// is a no-op.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error

	// Delete removes an activity record (administrative correction).
	Delete(ctx context.Context, id uint) error
}
