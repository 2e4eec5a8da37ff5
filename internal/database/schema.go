package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the reference tables in dependency order.
// Statement tables reference ticker and are keyed on the fiscal period
// so re-running a fetch upserts instead of duplicating.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ticker (
		ticker_id SERIAL PRIMARY KEY,
		symbol VARCHAR(20) UNIQUE NOT NULL,
		name VARCHAR(255),
		exchange VARCHAR(50),
		asset_type VARCHAR(50),
		ipo_date DATE,
		delisting_date DATE,
		status VARCHAR(20),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS balance_sheet (
		balance_sheet_id SERIAL PRIMARY KEY,
		ticker_id INTEGER REFERENCES ticker(ticker_id) ON DELETE CASCADE,
		fiscal_date_ending DATE NOT NULL,
		reported_currency VARCHAR(10),
		total_assets BIGINT,
		total_current_assets BIGINT,
		cash_and_cash_equivalents_at_carrying_value BIGINT,
		cash_and_short_term_investments BIGINT,
		inventory BIGINT,
		current_net_receivables BIGINT,
		total_non_current_assets BIGINT,
		property_plant_equipment BIGINT,
		intangible_assets BIGINT,
		goodwill BIGINT,
		investments BIGINT,
		long_term_investments BIGINT,
		short_term_investments BIGINT,
		total_liabilities BIGINT,
		total_current_liabilities BIGINT,
		current_accounts_payable BIGINT,
		deferred_revenue BIGINT,
		current_debt BIGINT,
		short_term_debt BIGINT,
		total_non_current_liabilities BIGINT,
		capital_lease_obligations BIGINT,
		long_term_debt BIGINT,
		current_long_term_debt BIGINT,
		long_term_debt_noncurrent BIGINT,
		short_long_term_debt_total BIGINT,
		total_shareholder_equity BIGINT,
		treasury_stock BIGINT,
		retained_earnings BIGINT,
		common_stock BIGINT,
		common_stock_shares_outstanding BIGINT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(ticker_id, fiscal_date_ending)
	)`,

	`CREATE TABLE IF NOT EXISTS cashflow (
		cashflow_id SERIAL PRIMARY KEY,
		ticker_id INTEGER REFERENCES ticker(ticker_id) ON DELETE CASCADE,
		fiscal_date_ending DATE NOT NULL,
		reported_currency VARCHAR(10),
		operating_cashflow BIGINT,
		change_in_operating_liabilities BIGINT,
		change_in_operating_assets BIGINT,
		depreciation_depletion_and_amortization BIGINT,
		capital_expenditures BIGINT,
		change_in_receivables BIGINT,
		change_in_inventory BIGINT,
		profit_loss BIGINT,
		cashflow_from_investment BIGINT,
		cashflow_from_financing BIGINT,
		payments_for_repurchase_of_common_stock BIGINT,
		payments_for_repurchase_of_equity BIGINT,
		dividend_payout BIGINT,
		dividend_payout_common_stock BIGINT,
		dividend_payout_preferred_stock BIGINT,
		proceeds_from_issuance_of_common_stock BIGINT,
		proceeds_from_repurchase_of_equity BIGINT,
		change_in_cash_and_cash_equivalents BIGINT,
		net_income BIGINT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(ticker_id, fiscal_date_ending)
	)`,

	`CREATE TABLE IF NOT EXISTS income_statement (
		income_statement_id SERIAL PRIMARY KEY,
		ticker_id INTEGER REFERENCES ticker(ticker_id) ON DELETE CASCADE,
		fiscal_date_ending DATE NOT NULL,
		reported_currency VARCHAR(10),
		gross_profit BIGINT,
		total_revenue BIGINT,
		cost_of_revenue BIGINT,
		cost_of_goods_and_services_sold BIGINT,
		operating_income BIGINT,
		selling_general_and_administrative BIGINT,
		research_and_development BIGINT,
		operating_expenses BIGINT,
		net_interest_income BIGINT,
		interest_income BIGINT,
		interest_expense BIGINT,
		depreciation_and_amortization BIGINT,
		income_before_tax BIGINT,
		income_tax_expense BIGINT,
		net_income_from_continuing_operations BIGINT,
		comprehensive_income_net_of_tax BIGINT,
		ebit BIGINT,
		ebitda BIGINT,
		net_income BIGINT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(ticker_id, fiscal_date_ending)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ticker_symbol ON ticker(symbol)`,
	`CREATE INDEX IF NOT EXISTS idx_balance_sheet_ticker ON balance_sheet(ticker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_balance_sheet_date ON balance_sheet(fiscal_date_ending)`,
	`CREATE INDEX IF NOT EXISTS idx_cashflow_ticker ON cashflow(ticker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cashflow_date ON cashflow(fiscal_date_ending)`,
	`CREATE INDEX IF NOT EXISTS idx_income_statement_ticker ON income_statement(ticker_id)`,
	`CREATE INDEX IF NOT EXISTS idx_income_statement_date ON income_statement(fiscal_date_ending)`,
}

// CreateSchema creates all tables and indexes. Every statement is
// idempotent, so running against an existing schema is safe.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
