package main

import (
	"context"
	"log"

	"doc-chat-be/internal/bootstrap"
	"doc-chat-be/internal/config"
	"doc-chat-be/internal/pkg/dbretry"
	"doc-chat-be/internal/server"
	"doc-chat-be/internal/tracer"
	"doc-chat-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Connect to Database with retry
	connectPolicy := dbretry.Policy{
		MaxAttempts:  cfg.Retry.MaxRetries,
		InitialDelay: cfg.Retry.InitialDelay,
		Multiplier:   cfg.Retry.Multiplier,
	}
	gormDB, err := database.ConnectWithRetry(context.Background(), cfg.Database.Connection, connectPolicy)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	defer database.Disconnect(gormDB)

	// 3. Ensure schema exists. A failure here is logged but not fatal so the
	// health endpoint can report the degraded state.
	if err := database.Migrate(gormDB); err != nil {
		log.Printf("Warning: schema migration failed: %v", err)
	}

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 5. Initialize and run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
