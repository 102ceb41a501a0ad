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

// OrderHandler holds dependencies for order handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: logger}
}

type placeOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// PlaceOrder checks out the authenticated user's active cart.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Payment method is required")
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), userID, &usecase.PlaceOrderInput{
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromOrder(order), "Order placed")
}

// GetOrder returns an order with items, payments and refunds.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromOrder(order), "")
}

// ListOrders lists the authenticated user's orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	orders, err := h.uc.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromOrders(orders), "")
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus advances an order along the fulfillment state machine.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Status is required")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromOrder(order), "Order status updated")
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder cancels an order and refunds whatever has been paid.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	var req cancelOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancel input")
	}

	order, err := h.uc.CancelOrder(c.Request().Context(), id, req.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromOrder(order), "Order cancelled")
}
