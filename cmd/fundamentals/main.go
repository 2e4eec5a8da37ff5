package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/rickgao/equity-data/internal/alphavantage"
	"github.com/rickgao/equity-data/internal/config"
	"github.com/rickgao/equity-data/internal/export"
	"github.com/rickgao/equity-data/internal/fundamentals"
	"github.com/rickgao/equity-data/internal/prices"
	"github.com/rickgao/equity-data/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/pipeline.yaml", "path to config file")
	ticker := flag.String("ticker", "", "stock symbol to fetch (required)")
	flag.Parse()

	_ = godotenv.Load()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	if *ticker == "" {
		logger.Error("missing required -ticker flag")
		flag.Usage()
		os.Exit(2)
	}
	symbol := strings.ToUpper(*ticker)

	logger.Info("starting fundamentals fetch",
		"version", version.Version,
		"commit", version.Commit,
		"ticker", symbol,
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

	if err := os.MkdirAll(cfg.Fundamentals.ResponseDir, 0o755); err != nil {
		logger.Error("failed to create response dir", "error", err)
		os.Exit(1)
	}

	balance, err := fetchStatement(ctx, client.BalanceSheet, symbol, "balancesheet", cfg.Fundamentals.ResponseDir, logger)
	if err != nil {
		logger.Error("failed to fetch balance sheet", "error", err)
		os.Exit(1)
	}
	cashflow, err := fetchStatement(ctx, client.CashFlow, symbol, "cashflow", cfg.Fundamentals.ResponseDir, logger)
	if err != nil {
		logger.Error("failed to fetch cash flow", "error", err)
		os.Exit(1)
	}
	income, err := fetchStatement(ctx, client.IncomeStatement, symbol, "incomestatement", cfg.Fundamentals.ResponseDir, logger)
	if err != nil {
		logger.Error("failed to fetch income statement", "error", err)
		os.Exit(1)
	}

	// Price history spans the earliest fiscal date through today.
	// Missing price data degrades the price-derived metrics to NaN
	// instead of failing the run.
	var series *prices.Series
	if start := earliestFiscalDate(income); start != "" {
		chart := prices.NewClient(
			cfg.Prices.BaseURL,
			prices.WithLogger(logger),
			prices.WithTimeout(cfg.Prices.Timeout),
		)
		end := time.Now().UTC().Format("2006-01-02")
		series, err = chart.History(ctx, symbol, start, end)
		if err != nil {
			logger.Warn("failed to fetch price history", "error", err)
			series = nil
		}
	}

	rows := fundamentals.Build(fundamentals.Statements{
		Income:    income,
		Balance:   balance,
		CashFlow:  cashflow,
		CAGRYears: cfg.Fundamentals.CAGRYears,
	}, series)

	outPath := filepath.Join(cfg.Fundamentals.CSVDir, fmt.Sprintf("%s_fundamentals.csv", strings.ToLower(symbol)))
	if err := export.WriteFundamentals(outPath, rows); err != nil {
		logger.Error("failed to write fundamentals csv", "error", err)
		os.Exit(1)
	}

	logger.Info("fundamentals complete",
		"ticker", symbol,
		"rows", len(rows),
		"output", outPath,
	)
}

// fetchStatement fetches one statement endpoint and archives the raw
// response body beside the derived outputs.
func fetchStatement(
	ctx context.Context,
	fetch func(context.Context, string) (*alphavantage.StatementResponse, error),
	symbol, kind, dir string,
	logger *slog.Logger,
) (*alphavantage.StatementResponse, error) {
	resp, err := fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", strings.ToLower(symbol), kind))
	if err := os.WriteFile(path, resp.Raw, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("saved statement",
		"kind", kind,
		"path", path,
		"annual_reports", len(resp.AnnualReports),
		"quarterly_reports", len(resp.QuarterlyReports),
	)
	return resp, nil
}

func earliestFiscalDate(resp *alphavantage.StatementResponse) string {
	earliest := ""
	for _, r := range resp.AnnualReports {
		d := r.FiscalDateEnding()
		if d == "" {
			continue
		}
		if earliest == "" || d < earliest {
			earliest = d
		}
	}
	return earliest
}
