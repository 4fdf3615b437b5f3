package chart

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

var (
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Bounds is the visible data window of a chart.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// AutoBounds covers every aggregate, always includes zero on the y axis and
// widens degenerate ranges so the chart never has a zero-width axis.
func AutoBounds(aggregates []model.YearlyAggregate) Bounds {
	if len(aggregates) == 0 {
		return Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1}
	}

	b := Bounds{
		XMin: float64(aggregates[0].Year),
		XMax: float64(aggregates[len(aggregates)-1].Year),
	}
	for _, a := range aggregates {
		v := float64(a.TotalCount)
		b.YMin = math.Min(b.YMin, v)
		b.YMax = math.Max(b.YMax, v)
	}
	b.YMax += (b.YMax - b.YMin) * 0.05
	return b.normalized()
}

func (b Bounds) normalized() Bounds {
	if b.XMax <= b.XMin {
		b.XMin--
		b.XMax++
	}
	if b.YMax <= b.YMin {
		b.YMax = b.YMin + 1
	}
	return b
}

// NewLineChart draws aggregates as a braille line inside bounds.
// Points outside the y window are clamped to its edge; points outside the
// x window are skipped.
func NewLineChart(aggregates []model.YearlyAggregate, width, height int, bounds Bounds) linechart.Model {
	bounds = bounds.normalized()

	xSteps := 2
	if span := int(bounds.XMax - bounds.XMin); span > 0 && span < 8 {
		xSteps = 1
	}

	lc := linechart.New(width, height, bounds.XMin, bounds.XMax, bounds.YMin, bounds.YMax,
		linechart.WithXYSteps(xSteps, 2),
		linechart.WithStyles(axisStyle, labelStyle, lineStyle),
		linechart.WithXLabelFormatter(func(_ int, v float64) string { return FormatYear(v) }),
		linechart.WithYLabelFormatter(func(_ int, v float64) string { return FormatCount(v) }),
	)
	lc.DrawXYAxisAndLabel()

	visible := make([]canvas.Float64Point, 0, len(aggregates))
	for _, a := range aggregates {
		x := float64(a.Year)
		if x < bounds.XMin || x > bounds.XMax {
			continue
		}
		y := math.Max(bounds.YMin, math.Min(bounds.YMax, float64(a.TotalCount)))
		visible = append(visible, canvas.Float64Point{X: x, Y: y})
	}

	switch len(visible) {
	case 0:
	case 1:
		lc.DrawRune(visible[0], '•')
	default:
		for i := 1; i < len(visible); i++ {
			lc.DrawBrailleLine(visible[i-1], visible[i])
		}
	}
	return lc
}
