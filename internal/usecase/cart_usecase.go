package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// AddCartItemInput defines the data required to add a cart line.
type AddCartItemInput struct {
	ProductID uint
	Quantity  int
}

// CartUsecase defines the interface for shopping cart operations. Every
// operation works on the user's single active cart, creating it on first
// use.
type CartUsecase interface {
	GetActiveCart(ctx context.Context, userID uint) (*entity.Cart, error)
	AddItem(ctx context.Context, userID uint, input *AddCartItemInput) (*entity.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID uint, itemID uint, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID uint, itemID uint) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID uint) error
}
