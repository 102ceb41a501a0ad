package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/dto"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/domain/entity"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ActivityHandler holds dependencies for the user activity trail handlers.
type ActivityHandler struct {
	uc     usecase.ActivityUsecase
	logger *slog.Logger
}

// NewActivityHandler is the constructor for ActivityHandler, injected by Fx.
func NewActivityHandler(uc usecase.ActivityUsecase, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{uc: uc, logger: logger}
}

type recordActivityRequest struct {
	Action    string `json:"action" validate:"required"`
	ProductID *uint  `json:"product_id"`
}

// RecordActivity appends an entry to the authenticated user's activity trail.
func (h *ActivityHandler) RecordActivity(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req recordActivityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid activity input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Action is required")
	}

	activity, err := h.uc.RecordActivity(c.Request().Context(), &usecase.RecordActivityInput{
		UserID:    userID,
		Action:    entity.ActivityAction(req.Action),
		ProductID: req.ProductID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromActivity(activity), "Activity recorded")
}

// ListActivities returns the authenticated user's activity trail, newest
// first.
func (h *ActivityHandler) ListActivities(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	activities, err := h.uc.ListUserActivities(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromActivities(activities), "")
}

type correctActivityRequest struct {
	Action    *string `json:"action"`
	ProductID *uint   `json:"product_id"`
}

// CorrectActivity amends an activity entry. Administrative use only.
func (h *ActivityHandler) CorrectActivity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	var req correctActivityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid correction input")
	}

	input := &usecase.CorrectActivityInput{ProductID: req.ProductID}
	if req.Action != nil {
		action := entity.ActivityAction(*req.Action)
		input.Action = &action
	}

	activity, err := h.uc.CorrectActivity(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromActivity(activity), "Activity corrected")
}

// DeleteActivity removes an activity entry. Administrative use only.
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	if err := h.uc.DeleteActivity(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Activity deleted")
}
