package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrCartNotFound is returned when a cart does not exist.
var ErrCartNotFound = errors.New("cart not found")

// ErrCartItemNotFound is returned when a cart line does not exist.
var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository defines the operations for cart persistence.
type CartRepository interface {
	// FindActiveByUser retrieves the user's active cart with items and their
	// products attached.
	FindActiveByUser(ctx context.Context, userID uint) (*entity.Cart, error)

	// Create persists a new cart.
	Create(ctx context.Context, cart *entity.Cart) error

	// AddItem persists a new cart line.
	AddItem(ctx context.Context, item *entity.CartItem) error

	// UpdateItemQuantity sets the quantity of a cart line.
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error

	// RemoveItem deletes a cart line.
	RemoveItem(ctx context.Context, itemID uint) error

	// ClearItems deletes all lines of a cart.
	ClearItems(ctx context.Context, cartID uint) error

	// Deactivate marks a cart inactive, typically after checkout.
	Deactivate(ctx context.Context, cartID uint) error
}
