package database_test

import (
	"errors"
	"fmt"
	"testing"

	"onboardu/config"
	"onboardu/database"
	"onboardu/database/dbtest"
	"onboardu/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "dsn")
	assert.Error(t, err)
}

func TestConnectDbReturnsMigratedHandle(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DatabaseURL: "file:connectdb?mode=memory&cache=shared"}

	db, err := database.ConnectDb(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	assert.True(t, db.Migrator().HasTable(&models.ProductDetails{}))
	require.NoError(t, db.Create(&models.ProductCategory{Name: "Shoes"}).Error)
}

func TestIsDuplicateOnUniqueViolation(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.ProductCategory{Name: "Shoes"}).Error)
	err := db.Create(&models.ProductCategory{Name: "Shoes"}).Error

	require.Error(t, err)
	assert.True(t, database.IsDuplicate(err))
}

func TestIsDuplicateDriverErrors(t *testing.T) {
	assert.False(t, database.IsDuplicate(nil))
	assert.False(t, database.IsDuplicate(errors.New("boom")))
	assert.True(t, database.IsDuplicate(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, database.IsDuplicate(&pgconn.PgError{Code: "23505"}))
	assert.False(t, database.IsDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.True(t, database.IsDuplicate(&mysql.MySQLError{Number: 1062}))
}

func TestIsNotFound(t *testing.T) {
	db := dbtest.New(t)

	err := db.First(&models.User{}, 42).Error
	assert.True(t, database.IsNotFound(err))
}
