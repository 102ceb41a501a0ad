package entity

import "time"

// Product is a sellable catalog item. Relation fields are read-only views
// populated only when the source record included them; list-valued relations
// are always non-nil after mapping, an unloaded relation maps to an empty
// slice rather than an error.
type Product struct {
	ID         uint
	Name       string
	Price      float64 // Non-negative.
	Stock      int     // Non-negative.
	CategoryID uint
	Category   *Category
	ShopID     uint
	Shop       *Shop
	VendorID   *uint
	Vendor     *Vendor
	Images     []ProductImage
	Variants   []ProductVariant
	Promotions []Promotion
	Reviews    []Review
	CartItems  []CartItem
	OrderItems []OrderItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductImage is a display asset attached to a product.
type ProductImage struct {
	ID        uint
	ProductID uint
	URL       string
	AltText   string
	Position  int
}

// ProductVariant is a purchasable variation of a product (size, color, ...).
type ProductVariant struct {
	ID        uint
	ProductID uint
	Name      string
	SKU       string
	Price     float64
	Stock     int
}

// Promotion is a time-bounded discount applied to a product.
type Promotion struct {
	ID              uint
	ProductID       uint
	Name            string
	DiscountPercent float64
	StartsAt        time.Time
	EndsAt          time.Time
}

// Review is a user's rating of a product.
type Review struct {
	ID        uint
	UserID    uint
	ProductID uint
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
