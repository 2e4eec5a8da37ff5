package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/equity-data/internal/model"
)

// upsertBatchSize bounds the number of queued statements per round trip.
const upsertBatchSize = 1000

const upsertTickerSQL = `
	INSERT INTO ticker (symbol, name, exchange, asset_type, ipo_date, delisting_date, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (symbol) DO UPDATE SET
		name = EXCLUDED.name,
		exchange = EXCLUDED.exchange,
		asset_type = EXCLUDED.asset_type,
		ipo_date = EXCLUDED.ipo_date,
		delisting_date = EXCLUDED.delisting_date,
		status = EXCLUDED.status,
		updated_at = CURRENT_TIMESTAMP
`

// LoadResult summarizes a ticker load.
type LoadResult struct {
	Upserted int
	Skipped  int
}

// LoadListings upserts the merged listing universe into the ticker
// table, batched. Rows without a symbol are skipped; unparseable dates
// load as NULL rather than failing the row.
func LoadListings(ctx context.Context, pool *pgxpool.Pool, listings []model.Listing, logger *slog.Logger) (LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var res LoadResult
	batch := &pgx.Batch{}

	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		queued := batch.Len()
		results := pool.SendBatch(ctx, batch)
		for i := 0; i < queued; i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("upsert ticker: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
		res.Upserted += queued
		batch = &pgx.Batch{}
		return nil
	}

	for _, l := range listings {
		if l.Symbol == "" {
			res.Skipped++
			continue
		}

		status := l.Status
		if status == "" {
			status = "Active"
		}

		batch.Queue(upsertTickerSQL,
			l.Symbol,
			nullIfEmpty(l.Name),
			nullIfEmpty(l.Exchange),
			nullIfEmpty(l.AssetType),
			parseDate(l.IPODate),
			parseDate(l.DelistingDate),
			status,
		)

		if batch.Len() >= upsertBatchSize {
			if err := flush(); err != nil {
				return res, err
			}
			logger.Debug("flushed ticker batch", "upserted", res.Upserted)
		}
	}

	if err := flush(); err != nil {
		return res, err
	}

	logger.Info("loaded listings",
		"upserted", res.Upserted,
		"skipped", res.Skipped,
	)
	return res, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseDate converts an ISO date to a DATE parameter, NULL when empty
// or malformed.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
