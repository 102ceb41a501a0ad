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

// CategoryHandler holds dependencies for category tree handlers.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

type createCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID *uint  `json:"parent_id"`
	ShopID   *uint  `json:"shop_id"`
}

// CreateCategory creates a category, optionally under a parent.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Category name is required")
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), &usecase.CreateCategoryInput{
		Name:     req.Name,
		ParentID: req.ParentID,
		ShopID:   req.ShopID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromCategory(category), "Category created")
}

// GetCategory returns a category with its parent and children attached.
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	category, err := h.uc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCategory(category), "")
}

type updateCategoryRequest struct {
	Name *string `json:"name"`
}

// UpdateCategory applies a partial update to a category.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), id, &usecase.UpdateCategoryInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCategory(category), "Category updated")
}

type setParentRequest struct {
	ParentID *uint `json:"parent_id"`
}

// SetParent re-parents a category; a null parent promotes it to top level.
func (h *CategoryHandler) SetParent(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	var req setParentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid parent input")
	}

	if err := h.uc.SetParent(c.Request().Context(), id, req.ParentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category moved")
}

// GetChildren lists the direct children of a category.
func (h *CategoryHandler) GetChildren(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	children, err := h.uc.GetChildren(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCategories(children), "")
}

// GetHierarchy returns the root-first ancestor chain of a category.
func (h *CategoryHandler) GetHierarchy(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	chain, err := h.uc.GetHierarchy(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCategories(chain), "")
}

// GetTopLevel lists parentless categories, optionally scoped to a shop via
// the shop_id query parameter.
func (h *CategoryHandler) GetTopLevel(c echo.Context) error {
	shopID, err := optionalQueryID(c, "shop_id")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY_PARAM", "Invalid shop_id")
	}

	categories, err := h.uc.GetTopLevel(c.Request().Context(), shopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromCategories(categories), "")
}

// Exists reports whether a category with the given name exists in scope.
func (h *CategoryHandler) Exists(c echo.Context) error {
	name := c.QueryParam("name")
	if name == "" {
		return response.BadRequest(c, "INVALID_QUERY_PARAM", "name is required")
	}
	shopID, err := optionalQueryID(c, "shop_id")
	if err != nil {
		return response.BadRequest(c, "INVALID_QUERY_PARAM", "Invalid shop_id")
	}

	exists, err := h.uc.CategoryExists(c.Request().Context(), name, shopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"exists": exists}, "")
}

// DeleteCategory removes a category.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted")
}
