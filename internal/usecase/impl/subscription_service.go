package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	txManager        repository.TransactionManager
	subscriptionRepo repository.SubscriptionRepository
	logger           *slog.Logger
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	SubscriptionRepo repository.SubscriptionRepository
	Logger           *slog.Logger
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		txManager:        params.TxManager,
		subscriptionRepo: params.SubscriptionRepo,
		logger:           params.Logger,
	}
}

func (srv *subscriptionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Subscribe starts a subscription for a vendor. A vendor has at most one
// active subscription, so any current one is deactivated in the same
// transaction before the new one is created.
func (srv *subscriptionService) Subscribe(ctx context.Context, input *usecase.SubscribeInput) (*entity.VendorSubscription, error) {
	if !input.Plan.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown subscription plan")
	}
	if input.Duration <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("subscription duration must be positive")
	}

	now := time.Now()
	subscription := &entity.VendorSubscription{
		VendorID:  input.VendorID,
		Plan:      input.Plan,
		IsActive:  true,
		StartedAt: now,
		ExpiresAt: now.Add(input.Duration),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		vendorRepo := repoFactory.VendorRepo()
		subscriptionRepo := repoFactory.SubscriptionRepo()

		if _, err := vendorRepo.FindByID(ctx, input.VendorID); err != nil {
			if errors.Is(err, repository.ErrVendorNotFound) {
				return domainerrors.ErrVendorNotFound.WrapMessage("vendor does not exist")
			}

			return errors.Wrap(err, "failed to find vendor")
		}

		current, err := subscriptionRepo.FindActiveByVendor(ctx, input.VendorID)
		if err != nil && !errors.Is(err, repository.ErrSubscriptionNotFound) {
			return errors.Wrap(err, "failed to find active subscription")
		}
		if err == nil {
			if err := subscriptionRepo.UpdateStatus(ctx, current.ID, false); err != nil {
				return errors.Wrap(err, "failed to deactivate current subscription")
			}
		}

		if err := subscriptionRepo.Create(ctx, subscription); err != nil {
			return errors.Wrap(err, "failed to create subscription")
		}

		if err := vendorRepo.UpdateFields(ctx, input.VendorID, map[string]any{"subscription_id": subscription.ID}); err != nil {
			return errors.Wrap(err, "failed to link subscription to vendor")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Vendor subscribed",
		slog.Uint64("vendor_id", uint64(input.VendorID)), slog.String("plan", input.Plan.String()))

	return subscription, nil
}

// GetActiveSubscription returns the vendor's active subscription.
func (srv *subscriptionService) GetActiveSubscription(ctx context.Context, vendorID uint) (*entity.VendorSubscription, error) {
	subscription, err := srv.subscriptionRepo.FindActiveByVendor(ctx, vendorID)
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return nil, domainerrors.ErrSubscriptionNotFound.WrapMessage("vendor has no active subscription")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active subscription")
	}

	return subscription, nil
}

// SweepExpired deactivates every active subscription past its expiry.
func (srv *subscriptionService) SweepExpired(ctx context.Context) (int64, error) {
	swept, err := srv.subscriptionRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to sweep expired subscriptions")
	}

	if swept > 0 {
		srv.log(ctx).Info("Expired subscriptions deactivated", slog.Int64("count", swept))
	}

	return swept, nil
}
