// Command migrate moves the document store schema up or down.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"dispatch/internal/app"
	"dispatch/internal/config"
	"dispatch/internal/docstore/postgres"
)

func main() {
	config.LoadDotEnv(6)

	var (
		direction = flag.String("direction", "up", "up|down")
		steps     = flag.Int("steps", 0, "number of steps (0 = all)")
	)
	flag.Parse()

	cfg := config.Load()
	logger, err := app.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := app.NewDatabase(ctx, cfg.Database, nil)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, postgres.Direction(*direction), *steps); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	logger.Info("migrations applied",
		zap.String("direction", *direction),
		zap.Int("steps", *steps),
		zap.String("table", postgres.MigrationsTable),
	)
}
