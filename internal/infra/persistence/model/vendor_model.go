package model

import (
	"time"

	"gorm.io/gorm"
)

// VendorModel mirrors the 'vendors' table. One row per seller user.
type VendorModel struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex"`
	StoreName      string `gorm:"type:varchar(100);not null"`
	SubscriptionID *uint  `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`

	Products     []ProductModel           `gorm:"foreignKey:VendorID"`
	Subscription *VendorSubscriptionModel `gorm:"foreignKey:SubscriptionID;references:ID"`
	Shop         *ShopModel               `gorm:"foreignKey:VendorID"`
}

// TableName explicitly sets the table name for GORM.
func (VendorModel) TableName() string {
	return "vendors"
}

// ShopModel mirrors the 'shops' table.
type ShopModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	URL       string `gorm:"type:varchar(255);not null;unique"`
	VendorID  uint   `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Vendor     *VendorModel    `gorm:"foreignKey:VendorID;references:ID"`
	Products   []ProductModel  `gorm:"foreignKey:ShopID"`
	Orders     []OrderModel    `gorm:"foreignKey:ShopID"`
	Categories []CategoryModel `gorm:"foreignKey:ShopID"`
}

// TableName explicitly sets the table name for GORM.
func (ShopModel) TableName() string {
	return "shops"
}
