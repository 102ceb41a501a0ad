package usecase

import (
	"context"

	"marketplace/internal/domain/entity"
)

// PlaceOrderInput defines the data required to check out the active cart.
type PlaceOrderInput struct {
	PaymentMethod string
}

// OrderUsecase defines the interface for order lifecycle operations.
type OrderUsecase interface {
	// PlaceOrder converts the user's active cart into an order: stock is
	// decremented, the order and its items are persisted, a payment is
	// recorded and the cart is deactivated, all in one transaction. An
	// order.placed event is published after commit, best-effort.
	PlaceOrder(ctx context.Context, userID uint, input *PlaceOrderInput) (*entity.Order, error)

	GetOrder(ctx context.Context, id uint) (*entity.Order, error)
	ListUserOrders(ctx context.Context, userID uint) ([]*entity.Order, error)

	// UpdateStatus advances an order along the fulfillment state machine.
	// Illegal transitions are rejected; the order's owner is notified of
	// every accepted change.
	UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) (*entity.Order, error)

	// CancelOrder cancels a pending or shipped order and records a full
	// refund for whatever has been paid.
	CancelOrder(ctx context.Context, id uint, reason string) (*entity.Order, error)
}
