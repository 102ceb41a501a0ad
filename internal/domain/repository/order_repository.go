package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for order persistence.
type OrderRepository interface {
	// Create persists a new order together with its items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with items, payments and refunds attached.
	FindByID(ctx context.Context, id uint) (*entity.Order, error)

	// ListByUser retrieves all orders of a user, newest first.
	ListByUser(ctx context.Context, userID uint) ([]*entity.Order, error)

	// UpdateStatus sets the status of an order. Transition legality is the
	// service's concern; the repository only persists.
	UpdateStatus(ctx context.Context, id uint, status entity.OrderStatus) error

	// AddPayment records a payment against an order.
	AddPayment(ctx context.Context, payment *entity.Payment) error

	// AddRefund records a refund against an order.
	AddRefund(ctx context.Context, refund *entity.Refund) error
}
