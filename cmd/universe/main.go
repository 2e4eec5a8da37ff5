package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rickgao/equity-data/internal/alphavantage"
	"github.com/rickgao/equity-data/internal/config"
	"github.com/rickgao/equity-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	flag.Parse()

	// .env is optional; environment variables referenced by the config
	// may come from anywhere.
	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	logger.Info("starting universe fetch",
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

	client := alphavantage.NewClient(
		cfg.AlphaVantage.BaseURL,
		cfg.AlphaVantage.APIKey,
		alphavantage.WithLogger(logger),
		alphavantage.WithTimeout(cfg.AlphaVantage.Timeout),
		alphavantage.WithRetries(cfg.AlphaVantage.MaxRetries, cfg.AlphaVantage.RetryBackoff),
	)

	if err := os.MkdirAll(cfg.Universe.OutputDir, 0o755); err != nil {
		logger.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}

	// Current universe first, then one snapshot per January 1st from
	// the start year up to (not including) the current year.
	if err := fetchAndSave(ctx, client, cfg.Universe.OutputDir, "", logger); err != nil {
		logger.Error("failed to fetch current universe", "error", err)
		os.Exit(1)
	}

	endYear := time.Now().Year()
	for year := cfg.Universe.StartYear; year < endYear; year++ {
		date := fmt.Sprintf("%d-01-01", year)
		if err := fetchAndSave(ctx, client, cfg.Universe.OutputDir, date, logger); err != nil {
			logger.Error("failed to fetch snapshot", "date", date, "error", err)
			os.Exit(1)
		}
	}

	logger.Info("universe fetch complete",
		"snapshots", endYear-cfg.Universe.StartYear+1,
		"output_dir", cfg.Universe.OutputDir,
	)
}

// fetchAndSave fetches one listing snapshot and writes it to disk. An
// empty date means the current universe, saved as "current".
func fetchAndSave(ctx context.Context, client *alphavantage.Client, dir, date string, logger *slog.Logger) error {
	body, err := client.ListingStatus(ctx, date)
	if err != nil {
		return err
	}

	name := date
	if name == "" {
		name = "current"
	}
	path := filepath.Join(dir, fmt.Sprintf("listing_status_%s.csv", name))

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("saved snapshot", "path", path, "bytes", len(body))
	return nil
}
