package model

import "context"

// Aggregator groups records by year and sums their counts.
// Implementations must return aggregates in ascending year order.
type Aggregator interface {
	Name() string
	Aggregate(ctx context.Context, records []Record) ([]YearlyAggregate, error)
}

// ChartSpec carries the fixed presentation settings shared by every renderer.
type ChartSpec struct {
	Title string
	YMin  float64
	YMax  float64
}
