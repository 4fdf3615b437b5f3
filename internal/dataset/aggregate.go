package dataset

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

// Aggregate groups records by year and sums their counts.
// The result is ordered by ascending year and never contains a year twice.
func Aggregate(records []model.Record) []model.YearlyAggregate {
	totals := make(map[int]int64)
	for _, r := range records {
		totals[r.Year] += r.Count
	}

	out := make([]model.YearlyAggregate, 0, len(totals))
	for year, total := range totals {
		out = append(out, model.YearlyAggregate{Year: year, TotalCount: total})
	}
	slices.SortFunc(out, func(a, b model.YearlyAggregate) int { return cmp.Compare(a.Year, b.Year) })
	return out
}

// Totals returns the sum of record counts and the sum of aggregate totals.
func Totals(records []model.Record, aggregates []model.YearlyAggregate) (recordTotal, aggregateTotal int64) {
	for _, r := range records {
		recordTotal += r.Count
	}
	for _, a := range aggregates {
		aggregateTotal += a.TotalCount
	}
	return recordTotal, aggregateTotal
}

// CheckConservation verifies that aggregation neither lost nor invented counts.
func CheckConservation(records []model.Record, aggregates []model.YearlyAggregate) error {
	recordTotal, aggregateTotal := Totals(records, aggregates)
	if recordTotal != aggregateTotal {
		return model.NewError("aggregate", model.KindInternal,
			fmt.Errorf("record total %d != aggregate total %d", recordTotal, aggregateTotal))
	}
	return nil
}

// MemoryAggregator aggregates in process.
type MemoryAggregator struct{}

func (MemoryAggregator) Name() string { return "memory" }

func (MemoryAggregator) Aggregate(ctx context.Context, records []model.Record) ([]model.YearlyAggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Aggregate(records), nil
}
