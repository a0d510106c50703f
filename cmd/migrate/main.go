// Command migrate applies the application schema to the configured database.
// Production deployments run this instead of relying on startup AutoMigrate.
package main

import (
	"log"

	"devconnector/internal/config"
	"devconnector/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration complete")
}
