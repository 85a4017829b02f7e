package main

import (
	"context"
	"log"

	"knowthee-be/internal/bootstrap"
	"knowthee-be/internal/config"
	"knowthee-be/internal/server"
	"knowthee-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Warm the name resolver so the first query can resolve people
	if _, err := container.EmployeeService.RefreshRoster(context.Background()); err != nil {
		log.Printf("Roster warm-up failed: %v", err)
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Audit Consumer...")
		if err := container.AuditService.Consume(context.Background()); err != nil {
			log.Printf("Background Audit Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
