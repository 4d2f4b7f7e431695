package config

import (
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strings" // Driver name normalization
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
	"github.com/spf13/cast"    // Lenient string conversion
)

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Application port
	DBDriver         string        // mysql, postgres or sqlite
	DBUser           string        // Database user
	DBPassword       string        // Database password
	DBHost           string        // Database host
	DBPort           string        // Database port
	DBName           string        // Database name
	DBDSN            string        // Full DSN, overrides the assembled one
	JWTSecret        string        // JWT secret key
	JWTTTL           time.Duration // Token lifetime
	RedisAddr        string        // Redis server address, empty disables login throttling
	RedisPass        string        // Redis password
	RedisDB          int           // Redis database number
	LoginMaxAttempts int           // Failed logins allowed per window
	LoginLockout     time.Duration // Failed login window
	ProductsFile     string        // Catalog import source
	LogLevel         string        // logrus level name
	LogFile          string        // Optional rotating log file
	IsProd           bool          // Is production environment
}

// env returns the variable or def when unset
func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:          env("APP_PORT", "8080"),
		DBDriver:         strings.ToLower(env("DB_DRIVER", DriverMySQL)),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBHost:           env("DB_HOST", "localhost"),
		DBPort:           os.Getenv("DB_PORT"),
		DBName:           env("DB_NAME", "storefront"),
		DBDSN:            os.Getenv("DB_DSN"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTTTL:           time.Duration(cast.ToInt(env("JWT_TTL_HOURS", "24"))) * time.Hour,
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          cast.ToInt(os.Getenv("REDIS_DB")),
		LoginMaxAttempts: cast.ToInt(env("LOGIN_MAX_ATTEMPTS", "5")),
		LoginLockout:     time.Duration(cast.ToInt(env("LOGIN_LOCKOUT_MINUTES", "10"))) * time.Minute,
		ProductsFile:     env("PRODUCTS_FILE", "./data/products.json"),
		LogLevel:         env("LOG_LEVEL", "info"),
		LogFile:          os.Getenv("LOG_FILE"),
		IsProd:           cast.ToBool(os.Getenv("IS_PROD")),
	}
}

// DSN builds the connection string for the configured driver
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case DriverSQLite:
		return c.DBName + ".db"
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true&loc=UTC"
	}
}
