// Package database wires the audit store's GORM connection and migration
// runner. The audit store is a recovery journal, not the deployment engine
// itself — see internal/audit.
package database

import (
	"fmt"

	"github.com/deployhub/orchestrator/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide audit store connection, set once by Connect.
var DB *gorm.DB

// Connect opens (and caches) a GORM connection to the audit store, using
// cfg.Database.Driver to pick between Postgres (production) and SQLite
// (tests / single-binary demo mode).
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if DB != nil {
		return DB, nil
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Name)
	default:
		dialector = postgres.Open(cfg.Database.GetDSN())
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping audit store: %w", err)
	}

	DB = db
	return DB, nil
}

// Close closes the pooled audit store connection, if open.
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
