package db

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-pro/fitlife/internal/models"
)

func TestNotifications_NewestFirstAndCapped(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < NotificationListLimit+5; i++ {
		n := &models.Notification{
			UserID:    "user-1",
			Type:      "reminder",
			Title:     "Drink water",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.AddNotification(n))
	}

	list, err := db.Notifications("user-1", 0)
	require.NoError(t, err)
	require.Len(t, list, NotificationListLimit)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.False(t, list[0].Read)
}

func TestAddNotification_AlwaysUnread(t *testing.T) {
	db := testDB(t)

	n := &models.Notification{UserID: "user-1", Title: "Welcome", Read: true}
	require.NoError(t, db.AddNotification(n))

	list, err := db.Notifications("user-1", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)
}

func TestMarkNotificationRead_Idempotent(t *testing.T) {
	db := testDB(t)

	n := &models.Notification{UserID: "user-1", Title: "Goal reached", Icon: "trophy"}
	require.NoError(t, db.AddNotification(n))

	got, err := db.MarkNotificationRead(n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	got, err = db.MarkNotificationRead(n.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)
	assert.Equal(t, "Goal reached", got.Title)
}

func TestMarkNotificationRead_Unknown(t *testing.T) {
	db := testDB(t)

	_, err := db.MarkNotificationRead("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, IsStoreError(err))
}
