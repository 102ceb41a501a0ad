package handler

import (
	"log/slog"
	"net/http"

	"marketplace/internal/delivery/http/dto"
	"marketplace/internal/delivery/http/response"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CartHandler holds dependencies for cart handlers. All routes operate on
// the authenticated user's active cart.
type CartHandler struct {
	uc     usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{uc: uc, logger: logger}
}

// GetCart returns the active cart, creating it on first use.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	cart, err := h.uc.GetActiveCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCart(cart), "")
}

type addCartItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// AddItem adds a product to the active cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Product and a positive quantity are required")
	}

	cart, err := h.uc.AddItem(c.Request().Context(), userID, &usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCart(cart), "Item added")
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a cart line's quantity; zero removes the line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	itemID, err := pathID(c, "itemID")
	if err != nil {
		return badPathParam(c, "itemID")
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	cart, err := h.uc.UpdateItemQuantity(c.Request().Context(), userID, itemID, req.Quantity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCart(cart), "Item updated")
}

// RemoveItem deletes a line from the active cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	itemID, err := pathID(c, "itemID")
	if err != nil {
		return badPathParam(c, "itemID")
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), userID, itemID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCart(cart), "Item removed")
}

// ClearCart empties the active cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	if err := h.uc.ClearCart(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}
