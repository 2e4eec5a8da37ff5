// Package database manages the PostgreSQL reference schema: the
// ticker table populated from the merged listing universe and the
// three annual statement tables keyed on (ticker_id, fiscal date).
package database
