package db

import (
	"strings" // DSN suffixing
	"time"    // Slow query threshold

	"storefront/internal/config" // Database settings

	"github.com/glebarez/sqlite" // Pure-Go SQLite driver for GORM
	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger interface
)

// NewLogger routes gorm's SQL logging through logrus
func NewLogger() logger.Interface {
	return logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond, // Warn about slow queries
		LogLevel:                  logger.Warn,            // Only warnings and errors
		IgnoreRecordNotFoundError: true,                   // Absence is a normal outcome
		Colorful:                  false,                  // Plain text for log files
	})
}

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		return OpenSQLite(cfg.DSN())
	case config.DriverPostgres:
		return open(postgres.Open(cfg.DSN()))
	case config.DriverMySQL:
		return open(mysql.Open(cfg.DSN()))
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(), // logrus-backed logger
		TranslateError: true,        // Map unique violations to gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", dialector.Name())
	}
	return gdb, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced.
// SQLite serializes writers, so the pool holds a single connection; this also keeps ":memory:" databases alive.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	if !strings.Contains(dsn, "foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}
	gdb, err := open(sqlite.Open(dsn))
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, errors.Wrap(err, "sqlite pool")
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

// Ping checks that the database answers
func Ping(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
