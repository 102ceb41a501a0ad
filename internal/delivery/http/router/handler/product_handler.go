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

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

type createProductRequest struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	Stock      int     `json:"stock" validate:"gte=0"`
	CategoryID uint    `json:"category_id" validate:"required"`
	ShopID     uint    `json:"shop_id" validate:"required"`
	VendorID   *uint   `json:"vendor_id"`
}

// CreateProduct files a new product in the catalog.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Name, category and shop are required; price and stock must not be negative")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		ShopID:     req.ShopID,
		VendorID:   req.VendorID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromProduct(product), "Product created")
}

// GetProduct returns a product with its relations attached.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromProduct(product), "")
}

// ListShopProducts lists the products of a shop.
func (h *ProductHandler) ListShopProducts(c echo.Context) error {
	shopID, err := pathID(c, "shopID")
	if err != nil {
		return badPathParam(c, "shopID")
	}

	products, err := h.uc.ListShopProducts(c.Request().Context(), shopID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromProducts(products), "")
}

// ListCategoryProducts lists the products filed under a category.
func (h *ProductHandler) ListCategoryProducts(c echo.Context) error {
	categoryID, err := pathID(c, "categoryID")
	if err != nil {
		return badPathParam(c, "categoryID")
	}

	products, err := h.uc.ListCategoryProducts(c.Request().Context(), categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromProducts(products), "")
}

type updateProductRequest struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock      *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID *uint    `json:"category_id"`
}

// UpdateProduct applies a partial update to a product.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Price and stock must not be negative")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, &usecase.UpdateProductInput{
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromProduct(product), "Product updated")
}

// DeleteProduct removes a product from the catalog.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}
