package main

import (
	"log"
	"time"

	"kyro-backend/cmd/config"
	migration "kyro-backend/cmd/database/migrate"
	"kyro-backend/internal/utils"
	"kyro-backend/pkg/pickup"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app, pickupService, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build app: %v", err)
	}

	sched, err := pickup.StartReconciler(pickupService, 5*time.Minute)
	if err != nil {
		log.Fatalf("failed to start reconciler: %v", err)
	}
	defer func() { _ = sched.Shutdown() }()

	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
