package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/ledgerfolio/internal/config"
	"github.com/aristath/ledgerfolio/internal/database"
	"github.com/aristath/ledgerfolio/internal/modules/portfolio"
	"github.com/aristath/ledgerfolio/internal/modules/snapshots"
	"github.com/aristath/ledgerfolio/internal/scheduler"
	"github.com/aristath/ledgerfolio/internal/server"
	"github.com/aristath/ledgerfolio/pkg/logger"
)

func main() {
	// Load configuration first so the logger honors LOG_LEVEL
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Ledgerfolio")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize scheduler with the snapshot job
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	positionRepo := portfolio.NewPositionRepository(db.Conn(), log)
	snapshotRepo := snapshots.NewRepository(db.Conn(), log)
	snapshotService := snapshots.NewService(positionRepo, snapshotRepo, log)

	if err := sched.AddJob(cfg.SnapshotSchedule, snapshots.NewJob(snapshotService, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot job")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		Config:  cfg,
		DevMode: cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
