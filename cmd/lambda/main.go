package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/database"
	"github.com/localnerve/shopfloor/internal/server"
	"github.com/localnerve/shopfloor/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// the pool survives between invocations of a warm container
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create %s storage: %v", cfg.StorageBackend, err)
	}

	app := server.New(cfg, db, store, server.Options{AccessLog: true})

	lambda.Start(server.ProxyHandler(app))
}
