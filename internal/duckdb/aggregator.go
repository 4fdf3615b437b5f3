package duckdb

import (
	"context"
	"fmt"
	"log"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

// Aggregator computes yearly totals with a SQL GROUP BY instead of in process.
type Aggregator struct {
	store *Store
}

// NewAggregator wraps a store as a model.Aggregator.
func NewAggregator(store *Store) *Aggregator {
	return &Aggregator{store: store}
}

func (a *Aggregator) Name() string { return "duckdb" }

// Aggregate replaces the stored records with records and returns their yearly totals.
func (a *Aggregator) Aggregate(ctx context.Context, records []model.Record) ([]model.YearlyAggregate, error) {
	if err := a.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset records: %w", err)
	}
	if err := a.store.InsertRecords(ctx, records); err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}

	if err := a.verifyStored(ctx, records); err != nil {
		return nil, err
	}

	totals, err := a.store.YearlyTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("query yearly totals: %w", err)
	}
	log.Printf("duckdb: aggregated %d records into %d years", len(records), len(totals))
	return totals, nil
}

// verifyStored checks that the table holds exactly the records just inserted.
func (a *Aggregator) verifyStored(ctx context.Context, records []model.Record) error {
	var want int64
	for _, r := range records {
		want += r.Count
	}

	stored, err := a.store.RecordCount(ctx)
	if err != nil {
		return fmt.Errorf("count stored records: %w", err)
	}
	if stored != int64(len(records)) {
		return model.NewError("aggregate", model.KindInternal,
			fmt.Errorf("stored %d records, inserted %d", stored, len(records)))
	}

	total, err := a.store.TotalCount(ctx)
	if err != nil {
		return fmt.Errorf("sum stored counts: %w", err)
	}
	if total != want {
		return model.NewError("aggregate", model.KindInternal,
			fmt.Errorf("stored total %d != record total %d", total, want))
	}
	return nil
}
