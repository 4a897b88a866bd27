package db

import (
	"github.com/fitlife-pro/fitlife/internal/models"
)

// NotificationListLimit caps how many notifications are returned per user.
const NotificationListLimit = 50

// AddNotification appends a notification. Read is always stored false.
func (db *DB) AddNotification(n *models.Notification) error {
	n.Read = false
	return storeErr("add notification", db.Create(n).Error)
}

// Notifications returns the user's most recent notifications, newest first.
func (db *DB) Notifications(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > NotificationListLimit {
		limit = NotificationListLimit
	}
	list := []models.Notification{}
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, storeErr("list notifications", err)
	}
	return list, nil
}

// MarkNotificationRead sets the read flag and returns the row.
// Marking an already-read notification is a no-op success.
func (db *DB) MarkNotificationRead(id string) (*models.Notification, error) {
	var n models.Notification
	if err := db.Where("id = ?", id).First(&n).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, storeErr("get notification", err)
	}
	if n.Read {
		return &n, nil
	}

	if err := db.Model(&n).Update("read", true).Error; err != nil {
		return nil, storeErr("mark notification read", err)
	}
	n.Read = true
	return &n, nil
}
