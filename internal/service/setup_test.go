package service_test

import (
	"testing"
	"time"

	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stack struct {
	db      *gorm.DB
	catalog *service.CatalogService
	cart    *service.CartService
	auth    *service.AuthService
}

var admin = domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleAdmin}

func newStack(t *testing.T) *stack {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	products := repository.NewProductRepository(gdb)
	users := repository.NewUserRepository(gdb)
	carts := repository.NewCartRepository(gdb)
	return &stack{
		db:      gdb,
		catalog: service.NewCatalogService(products),
		cart:    service.NewCartService(carts, products, users),
		auth:    service.NewAuthService(users, "test-secret", time.Hour, nil),
	}
}

func (s *stack) user(t *testing.T, name string) domain.User {
	t.Helper()
	u := domain.User{Username: name, Password: "x", Role: domain.RoleUser}
	require.NoError(t, s.db.Create(&u).Error)
	return u
}

func (s *stack) product(t *testing.T, name, price, category string) domain.Product {
	t.Helper()
	p := domain.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		Category:      category,
	}
	require.NoError(t, s.db.Create(&p).Error)
	return p
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
