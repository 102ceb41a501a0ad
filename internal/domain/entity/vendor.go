package entity

import "time"

// Vendor is the seller-side profile of a user, one-to-one with User.
type Vendor struct {
	ID             uint
	UserID         uint // Owning user; exactly one vendor per user.
	StoreName      string
	Products       []Product
	SubscriptionID *uint
	Subscription   *VendorSubscription
	Shop           *Shop
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Shop is a vendor's storefront. Categories scoped to the shop hang off it.
type Shop struct {
	ID         uint
	Name       string
	URL        string
	VendorID   uint
	Vendor     *Vendor
	Products   []Product
	Orders     []Order
	Categories []Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
