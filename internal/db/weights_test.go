package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlife-pro/fitlife/internal/models"
)

func TestWeightHistory_AscendingByDate(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)

	for i, w := range []float64{83.1, 82.5, 84.0} {
		// inserted out of order on purpose
		date := base.Add(time.Duration(2-i) * 24 * time.Hour)
		require.NoError(t, db.AddWeightEntry(&models.WeightEntry{UserID: "user-1", Weight: w, Date: date}))
	}
	require.NoError(t, db.AddWeightEntry(&models.WeightEntry{UserID: "user-2", Weight: 60, Date: base}))

	entries, err := db.WeightHistory("user-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, 84.0, entries[0].Weight)
	assert.Equal(t, 82.5, entries[1].Weight)
	assert.Equal(t, 83.1, entries[2].Weight)
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
	}
}

func TestProgressPhotos_DescendingByDate(t *testing.T) {
	db := testDB(t)
	base := time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)
	w := 80.0

	require.NoError(t, db.AddProgressPhoto(&models.ProgressPhoto{UserID: "user-1", PhotoURL: "https://cdn/a.jpg", Date: base}))
	require.NoError(t, db.AddProgressPhoto(&models.ProgressPhoto{UserID: "user-1", PhotoURL: "https://cdn/b.jpg", Weight: &w, Date: base.Add(time.Hour)}))

	photos, err := db.ProgressPhotos("user-1")
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "https://cdn/b.jpg", photos[0].PhotoURL)
	require.NotNil(t, photos[0].Weight)
	assert.Equal(t, 80.0, *photos[0].Weight)
	assert.Nil(t, photos[1].Weight)
}

func TestWeightHistory_EmptyIsEmptySlice(t *testing.T) {
	db := testDB(t)

	entries, err := db.WeightHistory("nobody")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
