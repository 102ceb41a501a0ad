package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name     string
	ParentID *uint // Nil creates a top-level category.
	ShopID   *uint // Nil creates a marketplace-wide category.
}

// UpdateCategoryInput defines an optional-field category update.
type UpdateCategoryInput struct {
	Name *string
}

// CategoryUsecase defines the interface for category tree operations. The
// tree is acyclic by construction: every mutation of a parent pointer is
// checked before it is persisted.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
	GetCategory(ctx context.Context, id uint) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uint, input *UpdateCategoryInput) (*entity.Category, error)

	// SetParent re-parents a category. A nil parentID promotes it to top
	// level. The move is rejected when it would make the category its own
	// ancestor.
	SetParent(ctx context.Context, id uint, parentID *uint) error

	// GetChildren returns the direct children of a category, id ascending.
	GetChildren(ctx context.Context, id uint) ([]*entity.Category, error)

	// GetHierarchy returns the ancestor chain of a category ordered
	// root-first, ending with the category itself.
	GetHierarchy(ctx context.Context, id uint) ([]*entity.Category, error)

	// GetTopLevel returns all parentless categories, optionally scoped to a
	// shop.
	GetTopLevel(ctx context.Context, shopID *uint) ([]*entity.Category, error)

	// CategoryExists reports whether a category with the exact name exists
	// in the given shop scope.
	CategoryExists(ctx context.Context, name string, shopID *uint) (bool, error)

	DeleteCategory(ctx context.Context, id uint) error
}
