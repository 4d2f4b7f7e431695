package db

import (
	"context"

	"storefront/internal/domain"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	username string
	password string
	email    string
	role     domain.Role
}

var defaultUsers = []seedUser{
	{username: "admin", password: "admin123", email: "admin@example.com", role: domain.RoleAdmin},
	{username: "user", password: "user123", email: "user@example.com", role: domain.RoleUser},
}

// SeedUsers creates the default admin and shopper accounts when the user table is empty
func SeedUsers(ctx context.Context, gdb *gorm.DB) error {
	var n int64
	if err := gdb.WithContext(ctx).Model(&domain.User{}).Count(&n).Error; err != nil {
		return errors.Wrap(err, "count users")
	}
	if n > 0 {
		return nil
	}
	for _, su := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "hash seed password")
		}
		u := domain.User{Username: su.username, Email: su.email, Password: string(hash), Role: su.role}
		if err := gdb.WithContext(ctx).Create(&u).Error; err != nil {
			return errors.Wrapf(err, "create seed user %s", su.username)
		}
		logrus.WithFields(logrus.Fields{"username": u.Username, "role": u.Role}).Info("Seeded default user")
	}
	return nil
}

// SeedProducts runs load when the product table is empty.
// An unavailable import source is logged and skipped so the server can still start.
func SeedProducts(ctx context.Context, gdb *gorm.DB, load func(context.Context) (int, error)) error {
	var n int64
	if err := gdb.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error; err != nil {
		return errors.Wrap(err, "count products")
	}
	if n > 0 {
		return nil
	}
	imported, err := load(ctx)
	if errors.Is(err, domain.ErrImportSourceUnavailable) {
		logrus.WithError(err).Warn("Catalog import source unavailable, starting with an empty catalog")
		return nil
	}
	if err != nil {
		return err
	}
	logrus.WithField("count", imported).Info("Seeded catalog")
	return nil
}
