package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name       string
	Price      float64
	Stock      int
	CategoryID uint
	ShopID     uint
	VendorID   *uint
}

// UpdateProductInput defines an optional-field product update. Nil fields
// are left untouched.
type UpdateProductInput struct {
	Name       *string
	Price      *float64
	Stock      *int
	CategoryID *uint
}

// ProductUsecase defines the interface for catalog operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uint) (*entity.Product, error)
	ListShopProducts(ctx context.Context, shopID uint) ([]*entity.Product, error)
	ListCategoryProducts(ctx context.Context, categoryID uint) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, id uint, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}
