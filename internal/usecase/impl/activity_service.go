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

// activityService implements the ActivityUsecase interface. The trail is
// append-only in normal operation; correction and deletion exist for
// administrative cleanup only.
type activityService struct {
	activityRepo repository.ActivityRepository
	logger       *slog.Logger
}

// ActivityServiceParams holds dependencies for ActivityService, injected by Fx.
type ActivityServiceParams struct {
	fx.In

	ActivityRepo repository.ActivityRepository
	Logger       *slog.Logger
}

// NewActivityService is the constructor for activityService.
func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return &activityService{
		activityRepo: params.ActivityRepo,
		logger:       params.Logger,
	}
}

func (srv *activityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RecordActivity appends an entry to the user's activity trail.
func (srv *activityService) RecordActivity(ctx context.Context, input *usecase.RecordActivityInput) (*entity.UserActivity, error) {
	if !input.Action.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown activity action")
	}

	activity := &entity.UserActivity{
		UserID:     input.UserID,
		Action:     input.Action,
		ProductID:  input.ProductID,
		OccurredAt: time.Now(),
	}
	if err := srv.activityRepo.Create(ctx, activity); err != nil {
		return nil, errors.Wrap(err, "failed to record activity")
	}

	return activity, nil
}

// ListUserActivities returns a user's activity trail, newest first.
func (srv *activityService) ListUserActivities(ctx context.Context, userID uint) ([]*entity.UserActivity, error) {
	activities, err := srv.activityRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activities")
	}

	return activities, nil
}

// CorrectActivity applies an administrative correction to an entry. An
// input with no set fields changes nothing.
func (srv *activityService) CorrectActivity(ctx context.Context, id uint, input *usecase.CorrectActivityInput) (*entity.UserActivity, error) {
	fields := map[string]any{}
	if input.Action != nil {
		if !input.Action.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown activity action")
		}
		fields["action"] = input.Action.String()
	}
	if input.ProductID != nil {
		fields["product_id"] = *input.ProductID
	}

	if len(fields) > 0 {
		srv.log(ctx).Info("Correcting activity entry", slog.Uint64("activity_id", uint64(id)))

		err := srv.activityRepo.UpdateFields(ctx, id, fields)
		if errors.Is(err, repository.ErrActivityNotFound) {
			return nil, domainerrors.ErrActivityNotFound.WrapMessage("activity does not exist")
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to correct activity")
		}
	}

	activity, err := srv.activityRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrActivityNotFound) {
		return nil, domainerrors.ErrActivityNotFound.WrapMessage("activity does not exist")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find activity")
	}

	return activity, nil
}

// DeleteActivity removes an entry from the trail (administrative cleanup).
func (srv *activityService) DeleteActivity(ctx context.Context, id uint) error {
	err := srv.activityRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrActivityNotFound) {
		return domainerrors.ErrActivityNotFound.WrapMessage("activity does not exist")
	}

	return err
}
