package service

import (
	"context"
	"time"
)

// Event topics. The order worker consumes order.placed via Pub/Sub push;
// user.created is for external consumers.
const (
	// TopicUserCreated carries UserCreatedEvent payloads.
	TopicUserCreated = "user.created"
	// TopicOrderPlaced carries OrderPlacedEvent payloads.
	TopicOrderPlaced = "order.placed"
)

// UserCreatedEvent is the reduced payload emitted after a successful user
// registration. It deliberately carries no credential material.
type UserCreatedEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing.
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderPlacedEvent is emitted after an order is committed.
type OrderPlacedEvent struct {
	RequestID string    `json:"request_id,omitempty"`
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	ShopID    uint      `json:"shop_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}

// EventPublisher defines the interface for publishing domain events to a
// message broker. Delivery is best-effort: callers log failures and never
// propagate them into the primary operation's result.
type EventPublisher interface {
	// PublishUserCreated publishes a user.created event.
	PublishUserCreated(ctx context.Context, event *UserCreatedEvent) error

	// PublishOrderPlaced publishes an order.placed event.
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
