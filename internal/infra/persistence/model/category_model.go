package model

import (
	"time"

	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table. The tree is stored by parent
// pointer only; no materialized path or cached depth column exists.
type CategoryModel struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string  `gorm:"type:varchar(100);not null;index"`
	ParentID *uint   `gorm:"index"`
	ShopID   *uint   `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Parent   *CategoryModel  `gorm:"foreignKey:ParentID"`
	Children []CategoryModel `gorm:"foreignKey:ParentID"`
	Products []ProductModel  `gorm:"foreignKey:CategoryID"`
	Shop     *ShopModel      `gorm:"foreignKey:ShopID;references:ID"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}
