package chart

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/tinytelemetry/sheepcount/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PNGRenderer saves a static line chart as a PNG image.
type PNGRenderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
	Spec   model.ChartSpec
}

// Render builds the plot and writes it to r.Path.
func (r *PNGRenderer) Render(ctx context.Context, aggregates []model.YearlyAggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(aggregates) == 0 {
		return model.NewError("render png", model.KindRender, ErrNothingToPlot)
	}

	f, err := os.Create(r.Path)
	if err != nil {
		return &model.OpError{Op: "render png", Kind: model.KindRender, Path: r.Path, Err: err}
	}
	if err := r.WritePNG(f, aggregates); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &model.OpError{Op: "render png", Kind: model.KindRender, Path: r.Path, Err: err}
	}

	log.Printf("chart: wrote %s (%d years)", r.Path, len(aggregates))
	return nil
}

// WritePNG encodes the chart to w.
func (r *PNGRenderer) WritePNG(w io.Writer, aggregates []model.YearlyAggregate) error {
	p, err := r.plot(aggregates)
	if err != nil {
		return err
	}

	width, height := r.Width, r.Height
	if width <= 0 {
		width = 8 * vg.Inch
	}
	if height <= 0 {
		height = 4 * vg.Inch
	}

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return model.NewError("render png", model.KindRender, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return model.NewError("render png", model.KindRender, err)
	}
	return nil
}

func (r *PNGRenderer) plot(aggregates []model.YearlyAggregate) (*plot.Plot, error) {
	if len(aggregates) == 0 {
		return nil, model.NewError("render png", model.KindRender, ErrNothingToPlot)
	}

	pts := make(plotter.XYs, len(aggregates))
	for i, a := range aggregates {
		pts[i].X = float64(a.Year)
		pts[i].Y = float64(a.TotalCount)
	}

	p := plot.New()
	p.Title.Text = r.Spec.Title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Total count"
	p.X.Tick.Marker = yearTicks{}
	p.Y.Tick.Marker = countTicks{}
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, model.NewError("render png", model.KindRender, fmt.Errorf("building line: %w", err))
	}
	line.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = line.Color
	p.Add(line, points)
	p.Legend.Add("total count", line)
	p.Legend.Top = true

	return p, nil
}

// yearTicks labels whole years only.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(min, max) {
		if t.Label == "" || t.Value != float64(int(t.Value)) {
			ticks = append(ticks, plot.Tick{Value: t.Value})
			continue
		}
		ticks = append(ticks, plot.Tick{Value: t.Value, Label: FormatYear(t.Value)})
	}
	return ticks
}

// countTicks keeps gonum's tick placement but uses compact count labels.
type countTicks struct{}

func (countTicks) Ticks(min, max float64) []plot.Tick {
	ticks := (plot.DefaultTicks{}).Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = FormatCount(ticks[i].Value)
		}
	}
	return ticks
}
