package db

import (
	"time"

	"github.com/fitlife-pro/fitlife/internal/models"
)

// GetUser returns the user row, or nil if it does not exist.
func (db *DB) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get user", err)
	}
	return &user, nil
}

// ActivateSubscription records an approved payment on the user row.
// Returns ErrNotFound when no user has that id.
func (db *DB) ActivateSubscription(userID, plan string, at time.Time) error {
	res := db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"subscription":        plan,
			"subscription_status": models.SubscriptionActive,
			"subscription_date":   at,
		})
	if res.Error != nil {
		return storeErr("activate subscription", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
