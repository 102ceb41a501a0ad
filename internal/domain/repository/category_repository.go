package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrCategoryNotFound is returned when a category does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the operations for category persistence.
// The tree is stored by parent pointer only; hierarchy views are derived by
// the service through bounded traversal over FindByID.
type CategoryRepository interface {
	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category with its parent and direct children attached.
	FindByID(ctx context.Context, id uint) (*entity.Category, error)

	// FindChildren retrieves the direct children of a category, id ascending.
	FindChildren(ctx context.Context, parentID uint) ([]*entity.Category, error)

	// FindTopLevel retrieves all categories without a parent, optionally
	// scoped to a shop, id ascending.
	FindTopLevel(ctx context.Context, shopID *uint) ([]*entity.Category, error)

	// ExistsByNameAndShop performs a case-sensitive exact-match existence
	// check scoped to a shop. Advisory only; not a schema constraint.
	ExistsByNameAndShop(ctx context.Context, name string, shopID *uint) (bool, error)

	// UpdateFields applies a partial update. An empty field map is a no-op.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error

	// Delete removes a category.
	Delete(ctx context.Context, id uint) error
}
