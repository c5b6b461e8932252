package main

import (
	"context"
	"fmt"
	"log"

	"campusexpense/internal/config"
	"campusexpense/internal/db"
	"campusexpense/internal/migrate"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	if err := migrate.Run(ctx, database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	version, err := migrate.CurrentVersion(ctx, database)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}
	fmt.Printf("schema at version %d\n", version)
}
