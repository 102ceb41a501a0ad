// Package model contains the GORM-specific structs mirroring the database
// tables. They are exported so the GORM Gen tool can reach them from cmd/gen.
package model

import (
	"time"

	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID              uint       `gorm:"primaryKey"`
	Email           string     `gorm:"type:varchar(255);unique;not null"`
	PasswordHash    string     `gorm:"type:varchar(255)"`
	Name            string     `gorm:"type:varchar(100)"`
	Role            string     `gorm:"type:varchar(20);not null;default:client"`
	IsEmailVerified bool       `gorm:"not null;default:false"`
	AuthProvider    string     `gorm:"type:varchar(20);not null;default:local"`
	GoogleID        *string    `gorm:"type:varchar(255);uniqueIndex"`
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Addresses     []AddressModel       `gorm:"foreignKey:UserID"`
	Orders        []OrderModel         `gorm:"foreignKey:UserID"`
	Carts         []CartModel          `gorm:"foreignKey:UserID"`
	Reviews       []ReviewModel        `gorm:"foreignKey:UserID"`
	Notifications []NotificationModel  `gorm:"foreignKey:UserID"`
	Activities    []UserActivityModel  `gorm:"foreignKey:UserID"`
	Vendor        *VendorModel         `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// AddressModel mirrors the 'addresses' table.
type AddressModel struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Label       string `gorm:"type:varchar(50)"`
	FullAddress string `gorm:"type:text;not null"`
	IsPrimary   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
