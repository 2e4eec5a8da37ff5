package config

import "time"

// PipelineConfig is the root configuration shared by all pipeline
// commands.
type PipelineConfig struct {
	AlphaVantage AlphaVantageConfig `yaml:"alphavantage"`
	Prices       PricesConfig       `yaml:"prices"`
	Database     DatabaseConfig     `yaml:"database"`
	Universe     UniverseConfig     `yaml:"universe"`
	Merge        MergeConfig        `yaml:"merge"`
	Fundamentals FundamentalsConfig `yaml:"fundamentals"`
}

// AlphaVantageConfig holds Alpha Vantage API settings.
type AlphaVantageConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// PricesConfig holds the daily chart API settings.
type PricesConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// DatabaseConfig holds the PostgreSQL connection for the reference
// database.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// UniverseConfig holds listing snapshot fetch settings.
type UniverseConfig struct {
	OutputDir string `yaml:"output_dir"`
	StartYear int    `yaml:"start_year"`
}

// MergeConfig holds snapshot reconciliation settings.
type MergeConfig struct {
	InputDir                string  `yaml:"input_dir"`
	MergedFile              string  `yaml:"merged_file"`
	ConflictFile            string  `yaml:"conflict_file"`
	NameSimilarityThreshold float64 `yaml:"name_similarity_threshold"`
}

// FundamentalsConfig holds statement fetch and ratio output settings.
type FundamentalsConfig struct {
	ResponseDir string `yaml:"response_dir"`
	CSVDir      string `yaml:"csv_dir"`
	CAGRYears   int    `yaml:"cagr_years"`
}
