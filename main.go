// main.go
package main

import (
	"context"
	"log"

	"club-booking/cmd"
	"club-booking/internal/audit"
	"club-booking/internal/data/migrations"
	"club-booking/internal/data/repository"
	"club-booking/internal/jobs"
	"club-booking/internal/wire"
	"club-booking/pkg/database"
	"club-booking/pkg/metrics"
	"club-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Refuse to serve against a stale schema; clubctl migrate brings it up
	if _, pending, err := migrations.Status(context.Background(), db); err != nil {
		logger.Fatal("Failed to check migration status", zap.Error(err))
	} else if len(pending) > 0 {
		logger.Fatal("Database schema is behind, run clubctl migrate up",
			zap.Strings("pending", pending))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Observability
	auditSink := audit.NewLogSink(logger)
	m := metrics.New()

	// Wire all dependencies
	app := wire.Wiring(repos, db, config, auditSink, m, logger)

	// Background jobs
	if config.Jobs.PoolSweepEnabled {
		queue, err := jobs.NewQueue(db, app.Service.Pool, config.Jobs, logger)
		if err != nil {
			logger.Fatal("Failed to build job queue", zap.Error(err))
		}
		if err := queue.Start(context.Background()); err != nil {
			logger.Fatal("Failed to start job queue", zap.Error(err))
		}
		defer queue.Stop(context.Background())

		logger.Info("Pool sweep scheduled",
			zap.Duration("interval", config.Jobs.PoolSweepInterval))
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}
