package main

import (
	"flag"
	"log"
	"os"

	"mining-finance-dashboard/internal/config"
	"mining-finance-dashboard/internal/server"
)

func main() {
	// Check for migrate command
	migrateCmd := flag.Bool("migrate", false, "Run database migration and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := server.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := server.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if *migrateCmd {
		log.Println("Migration completed successfully")
		os.Exit(0)
	}

	cache, err := server.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis: %v", err)
		log.Println("Continuing without Redis cache...")
		cache = nil
	}

	srv := server.New(cfg, db, cache)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := srv.Router().Run(cfg.HTTPAddress()); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
