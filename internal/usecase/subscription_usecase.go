package usecase

import (
	"context"
	"time"

	"marketplace/internal/domain/entity"
)

// SubscribeInput defines the data required to start a vendor subscription.
type SubscribeInput struct {
	VendorID uint
	Plan     entity.SubscriptionPlan
	Duration time.Duration
}

// SubscriptionUsecase defines the interface for vendor subscription
// operations.
type SubscriptionUsecase interface {
	// Subscribe starts a subscription for a vendor, deactivating any active
	// one first.
	Subscribe(ctx context.Context, input *SubscribeInput) (*entity.VendorSubscription, error)

	GetActiveSubscription(ctx context.Context, vendorID uint) (*entity.VendorSubscription, error)

	// SweepExpired deactivates every active subscription past its expiry
	// and returns the number of rows touched. Run periodically by the
	// scheduler.
	SweepExpired(ctx context.Context) (int64, error)
}
