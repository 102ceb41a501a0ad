package impl

import (
	"context"
	"log/slog"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notificationService implements the NotificationUsecase interface. The
// persisted notification is the source of truth; push delivery on top of it
// is best-effort.
type notificationService struct {
	notificationRepo repository.NotificationRepository
	pushService      service.PushService
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	NotificationRepo repository.NotificationRepository
	PushService      service.PushService
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		notificationRepo: params.NotificationRepo,
		pushService:      params.PushService,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// NotifyUser persists a notification and, when device tokens are supplied,
// pushes it to them. Push failures are logged, never returned.
func (srv *notificationService) NotifyUser(ctx context.Context, input *usecase.NotifyUserInput) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID: input.UserID,
		Type:   input.Type,
		Title:  input.Title,
		Body:   input.Body,
	}
	if err := srv.notificationRepo.Create(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "failed to persist notification")
	}

	if len(input.DeviceTokens) > 0 {
		srv.push(ctx, notification, input.DeviceTokens)
	}

	return notification, nil
}

func (srv *notificationService) push(ctx context.Context, notification *entity.Notification, tokens []string) {
	if srv.pushService == nil {
		srv.log(ctx).Debug("Push service not configured, skipping push",
			slog.Uint64("user_id", uint64(notification.UserID)))

		return
	}

	data := map[string]string{"type": notification.Type.String()}

	success, failure, err := srv.pushService.SendToTokens(ctx, tokens, notification.Title, notification.Body, data)
	if err != nil {
		srv.log(ctx).Warn("Push delivery failed",
			slog.Uint64("user_id", uint64(notification.UserID)), slog.Any("error", err))

		return
	}

	srv.log(ctx).Info("Push delivered",
		slog.Uint64("user_id", uint64(notification.UserID)),
		slog.Int("success", success), slog.Int("failure", failure))
}

// ListUserNotifications returns a user's notifications, newest first.
func (srv *notificationService) ListUserNotifications(ctx context.Context, userID uint) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// MarkRead flags a notification as read.
func (srv *notificationService) MarkRead(ctx context.Context, id uint) error {
	err := srv.notificationRepo.MarkRead(ctx, id)
	if errors.Is(err, repository.ErrNotificationNotFound) {
		return domainerrors.ErrNotificationNotFound.WrapMessage("notification does not exist")
	}

	return err
}
