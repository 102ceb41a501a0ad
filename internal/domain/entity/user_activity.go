package entity

import "time"

// ActivityAction classifies an entry in the user activity trail.
type ActivityAction string

const (
	// ActivityActionViewProduct records a product page view.
	ActivityActionViewProduct ActivityAction = "view_product"
	// ActivityActionAddToCart records an add-to-cart.
	ActivityActionAddToCart ActivityAction = "add_to_cart"
	// ActivityActionPurchase records a completed order.
	ActivityActionPurchase ActivityAction = "purchase"
	// ActivityActionLogin records a successful login.
	ActivityActionLogin ActivityAction = "login"
)

// String returns the string representation of the ActivityAction.
func (a ActivityAction) String() string {
	return string(a)
}

// IsValid checks if the ActivityAction is a known value.
func (a ActivityAction) IsValid() bool {
	switch a {
	case ActivityActionViewProduct, ActivityActionAddToCart, ActivityActionPurchase, ActivityActionLogin:
		return true
	default:
		return false
	}
}

// UserActivity is an append-only log entry. It is never mutated after
// creation except through the explicit administrative correction use cases.
type UserActivity struct {
	ID         uint
	UserID     uint
	Action     ActivityAction
	ProductID  *uint // Set for product-related actions.
	OccurredAt time.Time
}
