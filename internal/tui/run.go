package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

// ErrNoTerminal is returned when the interactive chart cannot take over a terminal.
var ErrNoTerminal = errors.New("interactive chart requires a real terminal")

// Options configures the interactive program.
type Options struct {
	Spec   model.ChartSpec
	Input  io.Reader // defaults to the controlling terminal
	Output io.Writer // defaults to stdout
}

// NewProgramModel builds the page router for aggregates.
func NewProgramModel(aggregates []model.YearlyAggregate, spec model.ChartSpec) *App {
	sel := newSelection(aggregates)
	keys := DefaultKeyMap()
	return NewApp(
		NewChartPage(sel, spec, keys),
		NewTablePage(sel, spec, keys),
	)
}

// Run shows the interactive chart and blocks until the user quits or ctx ends.
func Run(ctx context.Context, aggregates []model.YearlyAggregate, opts Options) error {
	if len(aggregates) == 0 {
		return model.NewError("render interactive", model.KindRender, chart.ErrNothingToPlot)
	}

	progOpts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(NewProgramModel(aggregates, opts.Spec), progOpts...)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return model.NewError("render interactive", model.KindRender, fmt.Errorf("running TUI: %w", err))
	}
	return nil
}
