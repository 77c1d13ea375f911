// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"onboardu/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns a fresh in-memory database with every table migrated. The
// database is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
