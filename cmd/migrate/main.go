// Command migrate applies the embedded schema migrations and exits. The
// server runs the same migrations on startup; this is for deploy pipelines
// that migrate ahead of a rollout.
package main

import (
	"log"

	"userhub/backend/internal/config"
	"userhub/backend/internal/db"
	"userhub/backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.Environment); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	pool, err := db.InitPostgres(cfg.DB.DSN())
	if err != nil {
		logging.Fatal("Failed to connect to Postgres", "error", err.Error())
	}
	defer pool.Close()

	if err := db.RunMigrations(pool); err != nil {
		logging.Fatal("Migration failed", "error", err.Error())
	}
}
