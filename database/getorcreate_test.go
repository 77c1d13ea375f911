package database_test

import (
	"testing"

	"onboardu/database"
	"onboardu/database/dbtest"
	"onboardu/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetOrCreateCreatesOnce(t *testing.T) {
	db := dbtest.New(t)

	first, created, err := database.GetOrCreate(db,
		&models.ProductCategory{Name: "Shoes"},
		&models.ProductCategory{Name: "Shoes", CreatedByID: 1})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := database.GetOrCreate(db,
		&models.ProductCategory{Name: "Shoes"},
		&models.ProductCategory{Name: "Shoes", CreatedByID: 2})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, uint(1), second.CreatedByID)

	var count int64
	db.Model(&models.ProductCategory{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// A conflicting insert rolls back only its savepoint; the caller's
// transaction keeps working.
func TestGetOrCreateKeepsTransactionUsableAfterConflict(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, db.Create(&models.ProductCategory{Name: "Bags", CreatedByID: 9}).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		// the lookup misses on CreatedByID so the insert collides on name
		_, _, err := database.GetOrCreate(tx,
			&models.ProductCategory{Name: "Bags", CreatedByID: 3},
			&models.ProductCategory{Name: "Bags", CreatedByID: 3})
		assert.True(t, database.IsNotFound(err))

		return tx.Create(&models.ProductCategory{Name: "Belts"}).Error
	})
	require.NoError(t, err)

	var count int64
	db.Model(&models.ProductCategory{}).Count(&count)
	assert.Equal(t, int64(2), count)
}
