package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rickgao/equity-data/internal/config"
	"github.com/rickgao/equity-data/internal/database"
	"github.com/rickgao/equity-data/internal/snapshot"
	"github.com/rickgao/equity-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	csvPath := flag.String("csv", "", "merged universe CSV (defaults to merge.merged_file)")
	flag.Parse()

	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	logger.Info("starting database setup",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *csvPath == "" {
		*csvPath = cfg.Merge.MergedFile
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	if err := database.CreateSchema(ctx, pool); err != nil {
		logger.Error("failed to create schema", "error", err)
		os.Exit(1)
	}
	logger.Info("schema ready")

	listings, err := snapshot.LoadFile(*csvPath)
	if err != nil {
		logger.Error("failed to load merged universe", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded merged universe", "path", *csvPath, "rows", len(listings))

	res, err := database.LoadListings(ctx, pool, listings, logger)
	if err != nil {
		logger.Error("failed to load tickers", "error", err)
		os.Exit(1)
	}

	logger.Info("database setup complete",
		"upserted", res.Upserted,
		"skipped", res.Skipped,
	)
}
