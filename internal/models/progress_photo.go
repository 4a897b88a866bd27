package models

import (
	"time"

	"gorm.io/gorm"
)

// ProgressPhoto references a progress picture and the weight at capture time.
type ProgressPhoto struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	UserID   string `gorm:"size:64;not null;index:idx_photo_user_date" json:"user_id"`
	PhotoURL string `gorm:"type:text;not null" json:"photo_url"`
	// Weight is nil when the user did not record one.
	Weight *float64  `json:"weight"`
	Date   time.Time `gorm:"not null;index:idx_photo_user_date" json:"date"`
}

// TableName specifies the table name for GORM.
func (ProgressPhoto) TableName() string {
	return "progress_photos"
}

// BeforeCreate assigns the row id.
func (p *ProgressPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = newID()
	}
	return nil
}
