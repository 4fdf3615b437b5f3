package chart

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ErrNothingToPlot is returned by every renderer when there are no aggregates.
var ErrNothingToPlot = errors.New("nothing to plot")

// TerminalRenderer draws a static line chart once to a writer.
type TerminalRenderer struct {
	Out    io.Writer
	Width  int
	Height int
	Spec   model.ChartSpec
}

// Render writes the framed chart and returns. It never waits for input.
func (r *TerminalRenderer) Render(ctx context.Context, aggregates []model.YearlyAggregate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	view, err := r.View(aggregates)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.Out, view); err != nil {
		return model.NewError("render static", model.KindRender, err)
	}
	return nil
}

// View returns the chart as a string.
func (r *TerminalRenderer) View(aggregates []model.YearlyAggregate) (string, error) {
	if len(aggregates) == 0 {
		return "", model.NewError("render static", model.KindRender, ErrNothingToPlot)
	}

	width, height := r.Width, r.Height
	if width <= 0 {
		width = model.DefaultChartWidth
	}
	if height <= 0 {
		height = model.DefaultChartHeight
	}

	lc := NewLineChart(aggregates, width, height, AutoBounds(aggregates))
	first, last := aggregates[0], aggregates[len(aggregates)-1]
	caption := labelStyle.Render(fmt.Sprintf("%d-%d, %d years, total per year", first.Year, last.Year, len(aggregates)))

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(r.Spec.Title),
		lc.View(),
		caption,
	)), nil
}
