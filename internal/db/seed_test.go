package db

import (
	"context"
	"testing"

	"storefront/internal/domain"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func memDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func TestSeedUsersOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	gdb := memDB(t)

	require.NoError(t, SeedUsers(ctx, gdb))
	var users []domain.User
	require.NoError(t, gdb.Order("id").Find(&users).Error)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, domain.RoleUser, users[1].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("admin123")))

	require.NoError(t, SeedUsers(ctx, gdb))
	var n int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestSeedProducts(t *testing.T) {
	ctx := context.Background()
	gdb := memDB(t)

	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return 0, errors.WithMessage(domain.ErrImportSourceUnavailable, "products.json")
	}
	assert.NoError(t, SeedProducts(ctx, gdb, load))
	assert.Equal(t, 1, calls)

	require.NoError(t, gdb.Create(&domain.Product{Name: "Existing", StockQuantity: 1}).Error)
	assert.NoError(t, SeedProducts(ctx, gdb, load))
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	require.NoError(t, gdb.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Product{}).Error)
	err := SeedProducts(ctx, gdb, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}
