package db

import (
	"storefront/internal/domain" // Importing domain models

	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.CartItem{}); err != nil {
		return errors.Wrap(err, "migration failed")
	}
	logrus.WithField("dialect", gdb.Dialector.Name()).Info("Migration completed.") // Log successful migration
	return nil
}
