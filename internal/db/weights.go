package db

import (
	"github.com/fitlife-pro/fitlife/internal/models"
)

// AddWeightEntry appends a weight entry. The generated id is set on entry.
func (db *DB) AddWeightEntry(entry *models.WeightEntry) error {
	return storeErr("add weight entry", db.Create(entry).Error)
}

// WeightHistory returns the user's weight entries, oldest first.
func (db *DB) WeightHistory(userID string) ([]models.WeightEntry, error) {
	entries := []models.WeightEntry{}
	err := db.Where("user_id = ?", userID).Order("date ASC").Find(&entries).Error
	if err != nil {
		return nil, storeErr("weight history", err)
	}
	return entries, nil
}

// AddProgressPhoto appends a progress photo.
func (db *DB) AddProgressPhoto(photo *models.ProgressPhoto) error {
	return storeErr("add progress photo", db.Create(photo).Error)
}

// ProgressPhotos returns the user's photos, newest first.
func (db *DB) ProgressPhotos(userID string) ([]models.ProgressPhoto, error) {
	photos := []models.ProgressPhoto{}
	err := db.Where("user_id = ?", userID).Order("date DESC").Find(&photos).Error
	if err != nil {
		return nil, storeErr("progress photos", err)
	}
	return photos, nil
}
