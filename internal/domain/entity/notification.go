package entity

import "time"

// NotificationType classifies a user notification.
type NotificationType string

const (
	// NotificationTypeOrderStatus announces an order status change.
	NotificationTypeOrderStatus NotificationType = "order_status"
	// NotificationTypePromotion announces a promotion on a product.
	NotificationTypePromotion NotificationType = "promotion"
	// NotificationTypeSystem is everything else.
	NotificationTypeSystem NotificationType = "system"
)

// String returns the string representation of the NotificationType.
func (t NotificationType) String() string {
	return string(t)
}

// Notification is a message addressed to a single user.
type Notification struct {
	ID        uint
	UserID    uint
	Type      NotificationType
	Title     string
	Body      string
	IsRead    bool
	CreatedAt time.Time
}
