package model

import "time"

// UserActivityModel mirrors the 'user_activities' table. Append-only; rows
// are only touched again through the administrative correction operations.
type UserActivityModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;index"`
	Action     string `gorm:"type:varchar(30);not null;index"`
	ProductID  *uint  `gorm:"index"`
	OccurredAt time.Time `gorm:"not null;index"`
}

// TableName explicitly sets the table name for GORM.
func (UserActivityModel) TableName() string {
	return "user_activities"
}

// NotificationModel mirrors the 'notifications' table.
type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Type      string `gorm:"type:varchar(30);not null"`
	Title     string `gorm:"type:varchar(255);not null"`
	Body      string `gorm:"type:text"`
	IsRead    bool   `gorm:"not null;default:false;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
