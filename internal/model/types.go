package model

// Record represents one row of sheep-count data.
// It is the canonical type passed between loading, aggregation and rendering.
type Record struct {
	Year        int
	Region      string
	Count       int64
	SourceLabel string // empty until annotated
}

// YearlyAggregate is the total count for one year, summed across regions.
type YearlyAggregate struct {
	Year       int
	TotalCount int64
}

// Column names assigned positionally to the source file.
const (
	ColumnYear        = "year"
	ColumnRegion      = "region"
	ColumnCount       = "count"
	ColumnSourceLabel = "source_label"
)

// Columns lists the source columns in file order.
var Columns = []string{ColumnYear, ColumnRegion, ColumnCount}
