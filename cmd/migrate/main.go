package main

import (
	"log"

	"saga-be/internal/config"
	"saga-be/pkg/database"
)

// migrate bootstraps a local development database with the tables and
// search vector the AI backend reads.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, true, database.PoolConfig{MaxOpenConns: 2})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running development schema migration...")
	if err := database.MigrateDevSchema(db); err != nil {
		log.Fatalf("Error: %v", err)
	}
	log.Println("✅ Success: development schema is up to date.")
}
