package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rickgao/equity-data/internal/config"
	"github.com/rickgao/equity-data/internal/export"
	"github.com/rickgao/equity-data/internal/reconcile"
	"github.com/rickgao/equity-data/internal/snapshot"
	"github.com/rickgao/equity-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	flag.Parse()

	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	logger.Info("starting universe merge",
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

	snapshots, err := snapshot.LoadDir(cfg.Merge.InputDir)
	if err != nil {
		logger.Error("failed to load snapshots", "dir", cfg.Merge.InputDir, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded snapshots", "count", len(snapshots), "dir", cfg.Merge.InputDir)

	result := reconcile.Reconcile(snapshots, cfg.Merge.NameSimilarityThreshold, logger)

	if err := export.WriteListings(cfg.Merge.MergedFile, result.Merged); err != nil {
		logger.Error("failed to write merged universe", "error", err)
		os.Exit(1)
	}
	if err := export.WriteConflicts(cfg.Merge.ConflictFile, result.Conflicts); err != nil {
		logger.Error("failed to write conflict log", "error", err)
		os.Exit(1)
	}

	logger.Info("merge complete",
		"merged_rows", len(result.Merged),
		"conflicts", len(result.Conflicts),
		"matched", result.Totals.Matched,
		"inserted", result.Totals.Inserted,
		"skipped", result.Totals.Skipped,
		"merged_file", cfg.Merge.MergedFile,
		"conflict_file", cfg.Merge.ConflictFile,
	)
}
