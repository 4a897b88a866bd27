package models

import (
	"time"

	"gorm.io/gorm"
)

// WeightEntry is one point of a user's weight history. Append-only.
type WeightEntry struct {
	ID     string    `gorm:"primaryKey;size:36" json:"id"`
	UserID string    `gorm:"size:64;not null;index:idx_weight_user_date" json:"user_id"`
	Weight float64   `gorm:"not null" json:"weight"`
	Note   string    `gorm:"type:text" json:"note"`
	Date   time.Time `gorm:"not null;index:idx_weight_user_date" json:"date"`
}

// TableName specifies the table name for GORM.
func (WeightEntry) TableName() string {
	return "weight_history"
}

// BeforeCreate assigns the row id.
func (w *WeightEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = newID()
	}
	return nil
}
