// @title School Records API
// @version 1.0
// @description Grade entry and final approval results for the municipal school network.

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"school_records_backend/internal/app"
	"school_records_backend/internal/config"
	"school_records_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on start, even in release mode")
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	createAdmin := flag.String("create-admin", "", "create an admin with this email (password from SCHOOL_RECORDS_ADMIN_PASSWORD) and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg, *configDir)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration finished, exiting")
		return
	}

	if *createAdmin != "" {
		password := os.Getenv("SCHOOL_RECORDS_ADMIN_PASSWORD")
		if len(password) < 8 {
			log.Fatal("SCHOOL_RECORDS_ADMIN_PASSWORD must be at least 8 characters")
		}
		if err := application.CreateAdmin(context.Background(), *createAdmin, password); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		return
	}

	application.Run()
}
