package dataset

import "github.com/tinytelemetry/sheepcount/internal/model"

// Annotate returns a copy of records with SourceLabel set to label.
// The input slice is left untouched.
func Annotate(records []model.Record, label string) []model.Record {
	out := make([]model.Record, len(records))
	for i, r := range records {
		r.SourceLabel = label
		out[i] = r
	}
	return out
}

// Head returns at most the first n records.
func Head(records []model.Record, n int) []model.Record {
	if n <= 0 {
		return nil
	}
	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
