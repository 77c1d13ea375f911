package database

import (
	"fmt"
	"time"

	"onboardu/config"
	"onboardu/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured driver. Unique violations are translated
// to gorm.ErrDuplicatedKey so callers can detect conflicts portably.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// sqlite allows a single writer; in-memory databases live on one connection
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// ConnectDb establishes the connection described by cfg and runs migrations.
// Callers pass the returned handle on explicitly.
func ConnectDb(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}
	log.Info("database connected", zap.String("driver", cfg.DBDriver))

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	log.Info("migrations completed")

	return db, nil
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserDetails{},
		&models.OTPVerification{},
		&models.RevokedToken{},
		&models.SellerGST{},
		&models.Business{},
		&models.BankDetails{},
		&models.ProductCategory{},
		&models.Catalogue{},
		&models.Product{},
		&models.ProductDetails{},
		&models.ProductImage{},
		&models.CatalogueImage{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
