package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/andrewpaige1/quizbot-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var ErrNotConnected = errors.New("database is not connected")

// Database owns the gorm engine and its connection pool.
type Database struct {
	env Environment

	mu sync.RWMutex
	db *gorm.DB
}

func NewDatabase(env Environment) *Database {
	return &Database{env: env}
}

// Connect opens the pool, verifies it and migrates the schema. Calling it
// on a connected Database is a no-op.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return nil
	}

	dialector, err := dialectorFor(d.env)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(gormLogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get connection pool: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("database ping failed: %w", err)
	}

	tunePool(db, d.env.DatabaseType)

	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}

	d.db = db
	slog.Info("database connected", "type", d.env.DatabaseType)
	return nil
}

// Disconnect releases the pool. Safe to call any number of times, including
// after a failed Connect.
func (d *Database) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	sqlDB, err := d.db.DB()
	d.db = nil
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Session returns a handle bound to ctx for one logical operation.
func (d *Database) Session(ctx context.Context) (*gorm.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.db == nil {
		return nil, ErrNotConnected
	}
	return d.db.WithContext(ctx), nil
}

func dialectorFor(env Environment) (gorm.Dialector, error) {
	switch env.DatabaseType {
	case DatabasePostgres:
		return postgres.New(postgres.Config{
			DSN:                  env.DatabaseURL,
			PreferSimpleProtocol: true,
		}), nil
	case DatabaseSQLite:
		return sqlite.Open(sqliteDSN(env.DatabaseURL)), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", env.DatabaseType)
	}
}

// sqliteDSN turns on foreign key enforcement for every connection the
// driver opens, unless the DSN already sets it.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func tunePool(db *gorm.DB, dbType string) {
	sqlDB, err := db.DB()
	if err != nil {
		slog.Warn("pool tune failed", "error", err)
		return
	}

	// SQLite allows a single writer; in-memory databases live on one connection
	if dbType == DatabaseSQLite {
		sqlDB.SetMaxOpenConns(1)
		return
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}
