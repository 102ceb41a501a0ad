package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID         uint    `gorm:"primaryKey"`
	Name       string  `gorm:"type:varchar(255);not null;index"`
	Price      float64 `gorm:"type:decimal(12,2);not null;check:price >= 0"`
	Stock      int     `gorm:"not null;default:0;check:stock >= 0"`
	CategoryID uint    `gorm:"not null;index"`
	ShopID     uint    `gorm:"not null;index"`
	VendorID   *uint   `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Category   *CategoryModel        `gorm:"foreignKey:CategoryID;references:ID"`
	Shop       *ShopModel            `gorm:"foreignKey:ShopID;references:ID"`
	Vendor     *VendorModel          `gorm:"foreignKey:VendorID;references:ID"`
	Images     []ProductImageModel   `gorm:"foreignKey:ProductID"`
	Variants   []ProductVariantModel `gorm:"foreignKey:ProductID"`
	Promotions []PromotionModel      `gorm:"foreignKey:ProductID"`
	Reviews    []ReviewModel         `gorm:"foreignKey:ProductID"`
	CartItems  []CartItemModel       `gorm:"foreignKey:ProductID"`
	OrderItems []OrderItemModel      `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel mirrors the 'product_images' table.
type ProductImageModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	URL       string `gorm:"type:varchar(512);not null"`
	AltText   string `gorm:"type:varchar(255)"`
	Position  int    `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (ProductImageModel) TableName() string {
	return "product_images"
}

// ProductVariantModel mirrors the 'product_variants' table.
type ProductVariantModel struct {
	ID        uint    `gorm:"primaryKey"`
	ProductID uint    `gorm:"not null;index"`
	Name      string  `gorm:"type:varchar(100);not null"`
	SKU       string  `gorm:"type:varchar(64);not null;uniqueIndex"`
	Price     float64 `gorm:"type:decimal(12,2);not null"`
	Stock     int     `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// PromotionModel mirrors the 'promotions' table.
type PromotionModel struct {
	ID              uint    `gorm:"primaryKey"`
	ProductID       uint    `gorm:"not null;index"`
	Name            string  `gorm:"type:varchar(100);not null"`
	DiscountPercent float64 `gorm:"type:decimal(5,2);not null"`
	StartsAt        time.Time
	EndsAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (PromotionModel) TableName() string {
	return "promotions"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	ProductID uint   `gorm:"not null;index"`
	Rating    int    `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
