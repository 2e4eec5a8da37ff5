package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultAPIBaseURL      = "https://www.alphavantage.co/query"
	DefaultChartBaseURL    = "https://query1.finance.yahoo.com/v8/finance/chart"
	DefaultAPITimeout      = 30 * time.Second
	DefaultMaxRetries      = 3
	DefaultRetryBackoff    = 1 * time.Second
	DefaultDBPort          = 5432
	DefaultDBSSLMode       = "prefer"
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultUniverseDir     = "data/listing_status"
	DefaultStartYear       = 2010
	DefaultMergedFile      = "data/merged_universe.csv"
	DefaultConflictFile    = "data/merge_conflicts.json"
	DefaultNameThreshold   = 0.90
	DefaultResponseDir     = "data/statements"
	DefaultFundamentalsDir = "data/fundamentals"
	DefaultCAGRYears       = 5
)

func (c *PipelineConfig) applyDefaults() {
	// API defaults
	if c.AlphaVantage.BaseURL == "" {
		c.AlphaVantage.BaseURL = DefaultAPIBaseURL
	}
	if c.AlphaVantage.Timeout == 0 {
		c.AlphaVantage.Timeout = DefaultAPITimeout
	}
	if c.AlphaVantage.MaxRetries == 0 {
		c.AlphaVantage.MaxRetries = DefaultMaxRetries
	}
	if c.AlphaVantage.RetryBackoff == 0 {
		c.AlphaVantage.RetryBackoff = DefaultRetryBackoff
	}

	if c.Prices.BaseURL == "" {
		c.Prices.BaseURL = DefaultChartBaseURL
	}
	if c.Prices.Timeout == 0 {
		c.Prices.Timeout = DefaultAPITimeout
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Universe defaults
	if c.Universe.OutputDir == "" {
		c.Universe.OutputDir = DefaultUniverseDir
	}
	if c.Universe.StartYear == 0 {
		c.Universe.StartYear = DefaultStartYear
	}

	// Merge defaults
	if c.Merge.InputDir == "" {
		c.Merge.InputDir = c.Universe.OutputDir
	}
	if c.Merge.MergedFile == "" {
		c.Merge.MergedFile = DefaultMergedFile
	}
	if c.Merge.ConflictFile == "" {
		c.Merge.ConflictFile = DefaultConflictFile
	}
	if c.Merge.NameSimilarityThreshold == 0 {
		c.Merge.NameSimilarityThreshold = DefaultNameThreshold
	}

	// Fundamentals defaults
	if c.Fundamentals.ResponseDir == "" {
		c.Fundamentals.ResponseDir = DefaultResponseDir
	}
	if c.Fundamentals.CSVDir == "" {
		c.Fundamentals.CSVDir = DefaultFundamentalsDir
	}
	if c.Fundamentals.CAGRYears == 0 {
		c.Fundamentals.CAGRYears = DefaultCAGRYears
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
