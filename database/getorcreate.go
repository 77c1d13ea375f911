package database

import (
	"gorm.io/gorm"
)

// GetOrCreate returns the row matching where, inserting fresh when none
// exists. The insert runs in a savepoint so that when a concurrent writer
// wins the race on the unique constraint the surrounding transaction stays
// usable and the winner's row is returned. Zero-valued fields of where are
// ignored by gorm, so every key field must be set.
func GetOrCreate[T any](tx *gorm.DB, where *T, fresh *T) (*T, bool, error) {
	var found T
	err := tx.Where(where).First(&found).Error
	if err == nil {
		return &found, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, err
	}

	err = tx.Transaction(func(sp *gorm.DB) error {
		return sp.Create(fresh).Error
	})
	if err == nil {
		return fresh, true, nil
	}
	if !IsDuplicate(err) {
		return nil, false, err
	}

	var winner T
	if err := tx.Where(where).First(&winner).Error; err != nil {
		return nil, false, err
	}
	return &winner, false, nil
}
