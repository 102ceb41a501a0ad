package entity

import "time"

// Cart is a user's open basket. A user may have several carts over time but
// at most one active cart.
type Cart struct {
	ID        uint
	UserID    uint
	IsActive  bool
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is a line of a cart. Product is a read-only denormalized view of
// the referenced product; the item never owns it.
type CartItem struct {
	ID        uint
	CartID    uint
	ProductID uint
	Product   *Product
	Quantity  int
	AddedAt   time.Time
}
