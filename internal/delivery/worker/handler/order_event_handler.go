package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"marketplace/config"
	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/constants"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// OrderEventHandler handles Pub/Sub push messages carrying order.placed
// events and fans them out to the selling vendor as a notification.
type OrderEventHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	shopRepo       repository.ShopRepository
	vendorRepo     repository.VendorRepository
	notificationUC usecase.NotificationUsecase
}

// OrderEventHandlerParams holds dependencies for the OrderEventHandler
type OrderEventHandlerParams struct {
	fx.In

	Config         *config.Config
	Logger         *slog.Logger
	ShopRepo       repository.ShopRepository
	VendorRepo     repository.VendorRepository
	NotificationUC usecase.NotificationUsecase
}

// NewOrderEventHandler creates a new Pub/Sub push handler
func NewOrderEventHandler(params OrderEventHandlerParams) *OrderEventHandler {
	// Google-signed push tokens are only present on the google provider
	// outside of development.
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &OrderEventHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		shopRepo:       params.ShopRepo,
		vendorRepo:     params.VendorRepo,
		notificationUC: params.NotificationUC,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *OrderEventHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse order event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	// Extract request_id for distributed tracing
	// Priority: message attributes > event field > existing context
	requestID := h.extractRequestID(ctx, &pushMsg, &event)

	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing order event",
		slog.Uint64("order_id", uint64(event.OrderID)),
		slog.Uint64("shop_id", uint64(event.ShopID)),
	)

	if err := h.notifyVendor(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process order event",
			slog.Uint64("order_id", uint64(event.OrderID)),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Order event processed",
		slog.Uint64("order_id", uint64(event.OrderID)),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *OrderEventHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderPlacedEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// notifyVendor resolves the shop's owning vendor and posts a notification
// to their account. Repository failures are retryable; a missing shop or
// vendor is not, the event is simply stale.
func (h *OrderEventHandler) notifyVendor(ctx context.Context, event *service.OrderPlacedEvent) error {
	shop, err := h.shopRepo.FindByID(ctx, event.ShopID)
	if errors.Is(err, repository.ErrShopNotFound) {
		h.logger.Warn("[Worker] Shop no longer exists, dropping event",
			slog.Uint64("shop_id", uint64(event.ShopID)))

		return nil
	}
	if err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	vendor, err := h.vendorRepo.FindByID(ctx, shop.VendorID)
	if errors.Is(err, repository.ErrVendorNotFound) {
		h.logger.Warn("[Worker] Vendor no longer exists, dropping event",
			slog.Uint64("vendor_id", uint64(shop.VendorID)))

		return nil
	}
	if err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	title := "New order received"
	body := fmt.Sprintf("Order #%d: %d item(s) totalling %.2f", event.OrderID, event.ItemCount, event.Total)

	_, err = h.notificationUC.NotifyUser(ctx, &usecase.NotifyUserInput{
		UserID: vendor.UserID,
		Type:   entity.NotificationTypeOrderStatus,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return newRetryableError(errors.WithStack(err))
	}

	return nil
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience should be the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http" // For local development
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	ctx := req.Context()
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	// The issuer should be accounts.google.com
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
