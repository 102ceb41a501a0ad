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

// VendorHandler holds dependencies for vendor and shop handlers.
type VendorHandler struct {
	uc     usecase.VendorUsecase
	logger *slog.Logger
}

// NewVendorHandler is the constructor for VendorHandler, injected by Fx.
func NewVendorHandler(uc usecase.VendorUsecase, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{uc: uc, logger: logger}
}

type registerVendorRequest struct {
	StoreName string `json:"store_name" validate:"required"`
}

// RegisterVendor opens a seller profile for the authenticated user.
func (h *VendorHandler) RegisterVendor(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req registerVendorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vendor input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Store name is required")
	}

	vendor, err := h.uc.RegisterVendor(c.Request().Context(), &usecase.RegisterVendorInput{
		UserID:    userID,
		StoreName: req.StoreName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromVendor(vendor), "Vendor registered")
}

// GetVendor returns a vendor with subscription and shop attached.
func (h *VendorHandler) GetVendor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	vendor, err := h.uc.GetVendor(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromVendor(vendor), "")
}

// GetOwnVendor returns the authenticated user's vendor profile.
func (h *VendorHandler) GetOwnVendor(c echo.Context) error {
	userID, ok := authenticatedUserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	vendor, err := h.uc.GetVendorByUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromVendor(vendor), "")
}

type createShopRequest struct {
	VendorID uint   `json:"vendor_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	URL      string `json:"url" validate:"omitempty,url"`
}

// CreateShop opens a storefront for a vendor.
func (h *VendorHandler) CreateShop(c echo.Context) error {
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", "Vendor and shop name are required")
	}

	shop, err := h.uc.CreateShop(c.Request().Context(), &usecase.CreateShopInput{
		VendorID: req.VendorID,
		Name:     req.Name,
		URL:      req.URL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dto.FromShop(shop), "Shop created")
}

// GetShop returns a shop.
func (h *VendorHandler) GetShop(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	shop, err := h.uc.GetShop(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dto.FromShop(shop), "")
}

// GetShopQR streams a PNG QR code resolving to the shop's storefront URL.
func (h *VendorHandler) GetShopQR(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badPathParam(c, "id")
	}

	png, err := h.uc.GenerateShopQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
