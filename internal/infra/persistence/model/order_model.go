package model

import "time"

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"not null;index"`
	ShopID    uint    `gorm:"not null;index"`
	Status    string  `gorm:"type:varchar(20);not null;default:pending;index"`
	Total     float64 `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items    []OrderItemModel `gorm:"foreignKey:OrderID"`
	Payments []PaymentModel   `gorm:"foreignKey:OrderID"`
	Refunds  []RefundModel    `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"not null;index"`
	ProductID uint    `gorm:"not null;index"`
	Quantity  int     `gorm:"not null;check:quantity > 0"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"not null;index"`
	Amount    float64 `gorm:"type:decimal(12,2);not null"`
	Method    string  `gorm:"type:varchar(50);not null"`
	PaidAt    time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PaymentModel) TableName() string {
	return "payments"
}

// RefundModel mirrors the 'refunds' table.
type RefundModel struct {
	ID        uint    `gorm:"primaryKey"`
	OrderID   uint    `gorm:"not null;index"`
	Amount    float64 `gorm:"type:decimal(12,2);not null"`
	Reason    string  `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefundModel) TableName() string {
	return "refunds"
}
