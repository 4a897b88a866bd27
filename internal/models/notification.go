package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is an in-app message for a user.
// Append-only except for Read, which only ever goes from false to true.
type Notification struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:64;not null;index:idx_notification_user_created" json:"user_id"`
	Type      string    `gorm:"size:32" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Icon      string    `gorm:"size:255" json:"icon"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index:idx_notification_user_created" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns the row id.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return nil
}
