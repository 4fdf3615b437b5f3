package duckdb

import (
	"context"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

// YearlyTotals returns the summed count per year in ascending year order.
func (s *Store) YearlyTotals(ctx context.Context) ([]model.YearlyAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT year, CAST(SUM(sheep_count) AS BIGINT) AS total_count
		FROM records
		GROUP BY year
		ORDER BY year ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]model.YearlyAggregate, 0)
	for rows.Next() {
		var agg model.YearlyAggregate
		if err := rows.Scan(&agg.Year, &agg.TotalCount); err != nil {
			return nil, err
		}
		results = append(results, agg)
	}
	return results, rows.Err()
}

// RecordCount returns the number of stored records.
func (s *Store) RecordCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	return count, err
}

// TotalCount returns the sum of count over all stored records.
func (s *Store) TotalCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT CAST(COALESCE(SUM(sheep_count), 0) AS BIGINT) FROM records`).Scan(&total)
	return total, err
}
