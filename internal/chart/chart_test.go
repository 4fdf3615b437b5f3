package chart

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tinytelemetry/sheepcount/internal/model"
)

func sampleAggregates() []model.YearlyAggregate {
	return []model.YearlyAggregate{
		{Year: 2010, TotalCount: 23_089_691},
		{Year: 2011, TotalCount: 25_031_565},
		{Year: 2012, TotalCount: 27_425_233},
		{Year: 2013, TotalCount: 29_284_247},
	}
}

func TestAutoBounds(t *testing.T) {
	t.Parallel()

	b := AutoBounds(sampleAggregates())
	if b.XMin != 2010 || b.XMax != 2013 {
		t.Fatalf("x bounds = [%v, %v], want [2010, 2013]", b.XMin, b.XMax)
	}
	if b.YMin != 0 {
		t.Fatalf("YMin = %v, want 0", b.YMin)
	}
	if b.YMax <= 29_284_247 {
		t.Fatalf("YMax = %v, want headroom above the largest total", b.YMax)
	}
}

func TestAutoBounds_SingleYearIsWidened(t *testing.T) {
	t.Parallel()

	b := AutoBounds([]model.YearlyAggregate{{Year: 2015, TotalCount: 0}})
	if b.XMax <= b.XMin {
		t.Fatalf("degenerate x bounds: %+v", b)
	}
	if b.YMax <= b.YMin {
		t.Fatalf("degenerate y bounds: %+v", b)
	}
}

func TestTerminalRenderer_WritesChart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := &TerminalRenderer{Out: &buf, Width: 60, Height: 12, Spec: model.ChartSpec{Title: "Sheep Counts in Turkey"}}

	if err := r.Render(context.Background(), sampleAggregates()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Sheep Counts in Turkey") {
		t.Fatalf("output missing title:\n%s", out)
	}
	if !strings.Contains(out, "2010-2013, 4 years") {
		t.Fatalf("output missing caption:\n%s", out)
	}
}

func TestTerminalRenderer_EmptyIsRenderError(t *testing.T) {
	t.Parallel()

	r := &TerminalRenderer{Out: &bytes.Buffer{}}
	err := r.Render(context.Background(), nil)
	if !errors.Is(err, model.ErrRender) {
		t.Fatalf("error = %v, want ErrRender", err)
	}
}

func TestNewLineChart_HandlesSinglePointAndClamping(t *testing.T) {
	t.Parallel()

	single := NewLineChart([]model.YearlyAggregate{{Year: 2015, TotalCount: 10}}, 40, 10, Bounds{XMin: 2015, XMax: 2015, YMin: 0, YMax: 100})
	if single.View() == "" {
		t.Fatal("expected a view for a single point")
	}

	clamped := NewLineChart(sampleAggregates(), 40, 10, Bounds{XMin: 2011, XMax: 2012, YMin: 0, YMax: 1})
	if clamped.View() == "" {
		t.Fatal("expected a view when values exceed the y window")
	}
}

func TestPNGRenderer_WritesImage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sheep.png")
	r := &PNGRenderer{Path: path, Spec: model.ChartSpec{Title: "Sheep Counts in Turkey"}}

	if err := r.Render(context.Background(), sampleAggregates()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("output is not a PNG (first bytes %q)", data[:min(8, len(data))])
	}
}

func TestPNGRenderer_Errors(t *testing.T) {
	t.Parallel()

	r := &PNGRenderer{Path: filepath.Join(t.TempDir(), "empty.png")}
	if err := r.Render(context.Background(), nil); !errors.Is(err, model.ErrRender) {
		t.Fatalf("empty: error = %v, want ErrRender", err)
	}

	bad := &PNGRenderer{Path: filepath.Join(t.TempDir(), "missing", "dir", "out.png")}
	if err := bad.Render(context.Background(), sampleAggregates()); !errors.Is(err, model.ErrRender) {
		t.Fatalf("bad path: error = %v, want ErrRender", err)
	}
}
