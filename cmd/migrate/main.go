package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"roombooking/internal/config"
	"roombooking/internal/database"
	applog "roombooking/internal/pkg/logger"
)

// Applies migrations and exits. Used when the API runs with RUN_MIGRATIONS=false.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := applog.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("database handle failed", zap.Error(err))
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db, logger); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	logger.Info("database is up to date", zap.String("dialect", database.Dialect(db)))
}
