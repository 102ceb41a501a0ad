package entity

import "time"

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state of every order.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusShipped means the order left the warehouse.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered is a terminal state.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is a terminal state.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether moving from s to next is a legal
// fulfillment transition. Delivered and cancelled are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// Order is the commerce aggregate root: it owns its items and references
// zero-or-more payments and refunds.
type Order struct {
	ID        uint
	UserID    uint
	ShopID    uint
	Status    OrderStatus
	Total     float64
	Items     []OrderItem
	Payments  []Payment
	Refunds   []Refund
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a line of an order. Product is a read-only denormalized view,
// populated only when the source record included the relation.
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Product   *Product
	Quantity  int
	UnitPrice float64 // Price at the time the order was placed.
}

// Payment records money received against an order.
type Payment struct {
	ID        uint
	OrderID   uint
	Amount    float64
	Method    string
	PaidAt    time.Time
	CreatedAt time.Time
}

// Refund records money returned against an order.
type Refund struct {
	ID        uint
	OrderID   uint
	Amount    float64
	Reason    string
	CreatedAt time.Time
}
