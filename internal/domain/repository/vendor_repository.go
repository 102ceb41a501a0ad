package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrVendorNotFound is returned when a vendor does not exist.
var ErrVendorNotFound = errors.New("vendor not found")

// ErrShopNotFound is returned when a shop does not exist.
var ErrShopNotFound = errors.New("shop not found")

// VendorRepository defines the operations for vendor persistence.
type VendorRepository interface {
	// Create persists a new vendor profile.
	Create(ctx context.Context, vendor *entity.Vendor) error

	// FindByID retrieves a vendor with its subscription and shop attached.
	FindByID(ctx context.Context, id uint) (*entity.Vendor, error)

	// FindByUserID retrieves the vendor profile owned by a user.
	FindByUserID(ctx context.Context, userID uint) (*entity.Vendor, error)

	// UpdateFields applies a partial update. An empty field map is a no-op.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
}

// ShopRepository defines the operations for shop persistence.
type ShopRepository interface {
	// Create persists a new shop.
	Create(ctx context.Context, shop *entity.Shop) error

	// FindByID retrieves a shop with its vendor attached.
	FindByID(ctx context.Context, id uint) (*entity.Shop, error)

	// FindByVendorID retrieves the shop owned by a vendor.
	FindByVendorID(ctx context.Context, vendorID uint) (*entity.Shop, error)

	// UpdateFields applies a partial update. An empty field map is a no-op.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
}
