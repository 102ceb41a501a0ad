package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// RegisterVendorInput defines the data required to open a seller profile.
type RegisterVendorInput struct {
	UserID    uint
	StoreName string
}

// CreateShopInput defines the data required to open a storefront.
type CreateShopInput struct {
	VendorID uint
	Name     string
	URL      string
}

// VendorUsecase defines the interface for vendor and shop operations.
type VendorUsecase interface {
	// RegisterVendor creates the seller profile for a user and promotes the
	// user to the seller role. A user has at most one vendor profile.
	RegisterVendor(ctx context.Context, input *RegisterVendorInput) (*entity.Vendor, error)

	GetVendor(ctx context.Context, id uint) (*entity.Vendor, error)
	GetVendorByUser(ctx context.Context, userID uint) (*entity.Vendor, error)

	CreateShop(ctx context.Context, input *CreateShopInput) (*entity.Shop, error)
	GetShop(ctx context.Context, id uint) (*entity.Shop, error)

	// GenerateShopQR renders a PNG QR code resolving to the shop's
	// storefront URL.
	GenerateShopQR(ctx context.Context, shopID uint) ([]byte, error)
}
