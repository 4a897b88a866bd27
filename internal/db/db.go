// Package db provides the GORM-based record store for FitLife.
// Production runs against Postgres; the pure-Go SQLite driver is used for
// local development and tests.
package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fitlife-pro/fitlife/internal/models"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB wraps the GORM database connection with FitLife-specific operations.
// It is safe for concurrent use by in-flight requests.
type DB struct {
	*gorm.DB
	driver string
}

// Config holds database configuration options.
type Config struct {
	Driver      string
	DSN         string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
	// ConnectAttempts bounds the start-up ping loop (postgres only).
	ConnectAttempts int
}

// DefaultConfig returns sensible defaults for a driver and DSN.
func DefaultConfig(driver, dsn string) Config {
	cfg := Config{
		Driver:          driver,
		DSN:             dsn,
		MaxIdleConn:     5,
		MaxOpenConn:     20,
		ConnectAttempts: 5,
	}
	if driver == DriverSQLite {
		cfg.MaxIdleConn = 1
		cfg.MaxOpenConn = 1
	}
	return cfg
}

// New opens a database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres, "":
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.DSN), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		// DELETE journal mode: WAL has visibility issues with the pure-Go driver
		dialector = sqlite.Open(fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.DSN))
	default:
		return nil, fmt.Errorf("unknown database driver: %s (supported: postgres, sqlite)", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := ping(gdb, cfg.ConnectAttempts); err != nil {
		return nil, err
	}

	wrapped := &DB{DB: gdb, driver: cfg.Driver}
	if err := wrapped.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return wrapped, nil
}

// ping checks the connection, backing off between attempts while the
// database container is still starting.
func ping(gdb *gorm.DB, attempts int) error {
	if attempts < 1 {
		attempts = 1
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}

	for i := 1; ; i++ {
		err = sqlDB.Ping()
		if err == nil {
			return nil
		}
		if i == attempts {
			return fmt.Errorf("ping database after %d attempts: %w", attempts, err)
		}
		wait := time.Duration(1<<uint(i-1)) * time.Second
		if wait > 10*time.Second {
			wait = 10 * time.Second
		}
		time.Sleep(wait)
	}
}

// Migrate runs GORM auto-migrations for all models, including the unique
// indexes that keep completions and plans single-row.
func (db *DB) Migrate() error {
	return db.AutoMigrate(
		&models.User{},
		&models.WeightEntry{},
		&models.ProgressPhoto{},
		&models.MealCompletion{},
		&models.WorkoutCompletion{},
		&models.MealPlan{},
		&models.WorkoutPlan{},
		&models.Notification{},
	)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// WithContext returns a DB bound to ctx. Queries issued through it are
// cancelled with the request.
func (d *DB) WithContext(ctx context.Context) *DB {
	return &DB{DB: d.DB.WithContext(ctx), driver: d.driver}
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fc(&DB{DB: tx, driver: d.driver})
	})
}

// Ping verifies the connection is alive. Used by the status endpoint.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
