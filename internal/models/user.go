package models

import "time"

// SubscriptionStatus values written by the payment webhook.
const (
	SubscriptionActive = "active"
)

// User carries the subscription columns of the users table.
// The table is owned by the front end; this service only reads it and
// updates the subscription fields.
type User struct {
	ID                 string     `gorm:"primaryKey;size:64" json:"id"`
	Email              string     `gorm:"size:255" json:"email"`
	Subscription       string     `gorm:"size:32" json:"subscription"`
	SubscriptionStatus string     `gorm:"size:32" json:"subscription_status"`
	SubscriptionDate   *time.Time `json:"subscription_date"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// IsSubscribed reports whether the subscription is active.
func (u *User) IsSubscribed() bool {
	return u.SubscriptionStatus == SubscriptionActive
}
