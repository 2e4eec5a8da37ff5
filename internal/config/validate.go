package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
// Database settings are validated only when a host is configured, since
// only the dbsetup command reaches Postgres.
func (c *PipelineConfig) Validate() error {
	if c.AlphaVantage.APIKey == "" {
		return errors.New("alphavantage.api_key is required")
	}
	if c.AlphaVantage.MaxRetries < 0 {
		return errors.New("alphavantage.max_retries must be >= 0")
	}

	if c.Universe.StartYear < 1990 || c.Universe.StartYear > 2100 {
		return fmt.Errorf("universe.start_year out of range: %d", c.Universe.StartYear)
	}

	if t := c.Merge.NameSimilarityThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("merge.name_similarity_threshold must be in (0, 1], got %v", t)
	}

	if c.Fundamentals.CAGRYears < 1 {
		return errors.New("fundamentals.cagr_years must be >= 1")
	}

	if c.Database.Postgres.Host != "" {
		if err := c.Database.Postgres.validate("database.postgres"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
