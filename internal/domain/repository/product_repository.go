package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrProductNotFound is returned when a product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a stock adjustment would go negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ProductRepository defines the operations for product persistence.
type ProductRepository interface {
	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product with its eagerly-loadable relations attached.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)

	// ListByShop retrieves all products of a shop, id ascending.
	ListByShop(ctx context.Context, shopID uint) ([]*entity.Product, error)

	// ListByCategory retrieves all products filed under a category, id ascending.
	ListByCategory(ctx context.Context, categoryID uint) ([]*entity.Product, error)

	// UpdateFields applies a partial update. An empty field map is a no-op.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error

	// AdjustStock atomically changes stock by delta, failing with
	// ErrInsufficientStock when the result would be negative.
	AdjustStock(ctx context.Context, id uint, delta int) error

	// Delete removes a product.
	Delete(ctx context.Context, id uint) error
}
