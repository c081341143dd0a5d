package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/deployhub/orchestrator/internal/platform/config"
	"github.com/deployhub/orchestrator/internal/platform/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	migrationsDir := filepath.Join("migrations")

	fmt.Println("Running database migrations...")
	if err := database.RunMigrations(cfg, migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	fmt.Println("Migrations completed successfully.")
}
