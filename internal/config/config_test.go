package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("LOGIN_MAX_ATTEMPTS", "")
	t.Setenv("PRODUCTS_FILE", "")
	t.Setenv("IS_PROD", "")

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.LoginMaxAttempts)
	assert.Equal(t, "./data/products.json", cfg.ProductsFile)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("LOGIN_LOCKOUT_MINUTES", "3")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("IS_PROD", "true")

	cfg := LoadConfig()
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3*time.Minute, cfg.LoginLockout)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
}

func TestDSN(t *testing.T) {
	c := &Config{DBDriver: DriverMySQL, DBUser: "shop", DBPassword: "pw", DBHost: "db", DBName: "store"}
	assert.Equal(t, "shop:pw@tcp(db:3306)/store?charset=utf8mb4&parseTime=true&loc=UTC", c.DSN())

	c.DBDriver = DriverPostgres
	c.DBPort = "6543"
	assert.Contains(t, c.DSN(), "host=db user=shop password=pw dbname=store port=6543")

	c.DBDriver = DriverSQLite
	assert.Equal(t, "store.db", c.DSN())

	c.DBDSN = "file::memory:"
	assert.Equal(t, "file::memory:", c.DSN())
}
