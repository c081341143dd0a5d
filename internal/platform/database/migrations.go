package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/deployhub/orchestrator/internal/platform/config"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all pending audit-store migrations from migrationsDir.
func RunMigrations(cfg *config.Config, migrationsDir string) error {
	db, dialect, err := openForMigration(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("migrations directory does not exist: %s", absPath)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, absPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// RollbackMigrations rolls back the most recently applied migration.
func RollbackMigrations(cfg *config.Config, migrationsDir string) error {
	db, dialect, err := openForMigration(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory path: %w", err)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Down(db, absPath); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	return nil
}

// MigrationStatus prints the current migration status to stdout.
func MigrationStatus(cfg *config.Config, migrationsDir string) error {
	db, dialect, err := openForMigration(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory path: %w", err)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Status(db, absPath); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	return nil
}

func openForMigration(cfg *config.Config) (*sql.DB, string, error) {
	driver := "postgres"
	dsn := cfg.Database.GetDSN()
	if cfg.Database.Driver == "sqlite" {
		driver = "sqlite3"
		dsn = cfg.Database.Name
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection for migrations: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return db, driver, nil
}
