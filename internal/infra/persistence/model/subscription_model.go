package model

import (
	"time"

	"gorm.io/gorm"
)

// VendorSubscriptionModel mirrors the 'vendor_subscriptions' table.
type VendorSubscriptionModel struct {
	ID        uint   `gorm:"primaryKey"`
	VendorID  uint   `gorm:"not null;index"`
	Plan      string `gorm:"type:varchar(20);not null"`
	IsActive  bool   `gorm:"not null;default:true;index"`
	StartedAt time.Time
	ExpiresAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (VendorSubscriptionModel) TableName() string {
	return "vendor_subscriptions"
}
