package handler

import (
	"log/slog"
	"net/http"
	"time"

	"marketplace/internal/delivery/http/dto"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SubscriptionHandler holds dependencies for vendor subscription handlers.
type SubscriptionHandler struct {
	uc     usecase.SubscriptionUsecase
	logger *slog.Logger
}

// NewSubscriptionHandler is the constructor for SubscriptionHandler, injected by Fx.
func NewSubscriptionHandler(uc usecase.SubscriptionUsecase, logger *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, logger: logger}
}

type subscribeRequest struct {
	VendorID uint   `json:"vendor_id" validate:"required"`
	Plan     string `json:"plan" validate:"required"`
	Days     int    `json:"days" validate:"required,gt=0"`
}

// Subscribe starts a subscription for a vendor, replacing any active one.
func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscription input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Vendor, plan and a positive day count are required")
	}

	subscription, err := h.uc.Subscribe(c.Request().Context(), &usecase.SubscribeInput{
		VendorID: req.VendorID,
		Plan:     entity.SubscriptionPlan(req.Plan),
		Duration: time.Duration(req.Days) * 24 * time.Hour,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromSubscription(subscription), "Subscription started")
}

// GetActive returns a vendor's active subscription.
func (h *SubscriptionHandler) GetActive(c echo.Context) error {
	vendorID, err := pathID(c, "vendorID")
	if err != nil {
		return badPathParam(c, "vendorID")
	}

	subscription, err := h.uc.GetActiveSubscription(c.Request().Context(), vendorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromSubscription(subscription), "")
}
