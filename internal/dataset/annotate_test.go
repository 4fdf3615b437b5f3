package dataset

import (
	"testing"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

func TestAnnotate_SetsLabelOnly(t *testing.T) {
	t.Parallel()

	in := []model.Record{
		{Year: 2015, Region: "A", Count: 100},
		{Year: 2016, Region: "B", Count: 200, SourceLabel: "old"},
	}

	out := Annotate(in, model.DefaultSourceLabel)

	if len(out) != len(in) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(in))
	}
	for i := range out {
		if out[i].SourceLabel != "seren" {
			t.Errorf("out[%d].SourceLabel = %q, want %q", i, out[i].SourceLabel, "seren")
		}
		got := out[i]
		got.SourceLabel = in[i].SourceLabel
		if got != in[i] {
			t.Errorf("out[%d] changed other fields: %+v vs %+v", i, out[i], in[i])
		}
	}
	if in[0].SourceLabel != "" || in[1].SourceLabel != "old" {
		t.Fatal("Annotate mutated its input")
	}
}

func TestHead(t *testing.T) {
	t.Parallel()

	records := []model.Record{{Year: 1}, {Year: 2}, {Year: 3}, {Year: 4}}

	tests := []struct {
		n    int
		want int
	}{
		{n: 3, want: 3},
		{n: 10, want: 4},
		{n: 0, want: 0},
		{n: -1, want: 0},
	}
	for _, tt := range tests {
		if got := len(Head(records, tt.n)); got != tt.want {
			t.Errorf("len(Head(%d)) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
