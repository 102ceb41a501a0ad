package repository

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/domain/entity"
)

// ErrSubscriptionNotFound is returned when a subscription does not exist.
var ErrSubscriptionNotFound = errors.New("subscription not found")

// SubscriptionRepository defines the operations for vendor subscription persistence.
type SubscriptionRepository interface {
	// Create persists a new subscription.
	Create(ctx context.Context, subscription *entity.VendorSubscription) error

	// FindByID retrieves a subscription by its unique ID.
	FindByID(ctx context.Context, id uint) (*entity.VendorSubscription, error)

	// FindActiveByVendor retrieves the vendor's active subscription.
	FindActiveByVendor(ctx context.Context, vendorID uint) (*entity.VendorSubscription, error)

	// UpdateStatus sets the active flag of a subscription.
	UpdateStatus(ctx context.Context, id uint, isActive bool) error

	// DeactivateExpired deactivates every active subscription whose expiry
	// lies before now, returning the number of rows affected.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
