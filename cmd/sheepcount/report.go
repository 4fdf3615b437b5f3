package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/dataset"
	"github.com/tinytelemetry/sheepcount/internal/duckdb"
	"github.com/tinytelemetry/sheepcount/internal/model"
	"github.com/tinytelemetry/sheepcount/internal/summary"
)

// runReport executes the pipeline once: load, annotate, aggregate, then every
// enabled renderer in turn.
func runReport(ctx context.Context, cfg appConfig, out io.Writer) error {
	cleanupLogger := configureRuntimeLogger(cfg.LogPath, cfg.Debug)
	defer cleanupLogger()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	records, err := dataset.Load(cfg.Input)
	if err != nil {
		return err
	}
	records = dataset.Annotate(records, cfg.SourceLabel)

	if cfg.PreviewRows > 0 && len(records) > 0 {
		fmt.Fprintln(out, previewTable(dataset.Head(records, cfg.PreviewRows)))
	}

	aggregator, closeAggregator, err := newAggregator(cfg.Aggregator)
	if err != nil {
		return err
	}
	defer closeAggregator()

	aggregates, err := aggregator.Aggregate(ctx, records)
	if err != nil {
		return fmt.Errorf("aggregate (%s): %w", aggregator.Name(), err)
	}
	if err := dataset.CheckConservation(records, aggregates); err != nil {
		return err
	}
	log.Printf("report: %d records, %d years via %s aggregator", len(records), len(aggregates), aggregator.Name())

	plugins := buildRendererPlugins(RendererPluginConfig{
		Spec:        cfg.chartSpec(),
		Out:         out,
		ChartWidth:  cfg.ChartWidth,
		ChartHeight: cfg.ChartHeight,
		PNGPath:     cfg.PNGPath,
		Interactive: cfg.Interactive,
		WebAddr:     cfg.WebAddr,
		OpenBrowser: cfg.OpenBrowser,
	})

	// Nothing is written until every enabled output is known to be usable.
	if len(aggregates) == 0 {
		return model.NewError("render", model.KindRender, chart.ErrNothingToPlot)
	}
	if err := preflightRenderers(plugins); err != nil {
		return err
	}
	if cfg.SummaryPath != "" {
		if err := checkParentDir("export summary", model.KindInternal, cfg.SummaryPath); err != nil {
			return err
		}
	}

	if cfg.SummaryPath != "" {
		s := summary.Build(cfg.Title, cfg.Input, cfg.SourceLabel, records, aggregates)
		if err := summary.WriteFile(cfg.SummaryPath, s); err != nil {
			return &model.OpError{Op: "export summary", Kind: model.KindInternal, Path: cfg.SummaryPath, Err: err}
		}
		log.Printf("report: summary written to %s", cfg.SummaryPath)
	}

	printReportBanner(out, cfg, records, aggregates, aggregator.Name())

	for _, plugin := range plugins {
		if !plugin.Enabled() {
			continue
		}
		if err := plugin.Render(ctx, aggregates); err != nil {
			return fmt.Errorf("%s renderer: %w", plugin.Name(), err)
		}
		log.Printf("report: %s renderer done", plugin.Name())
	}
	return nil
}

func newAggregator(name string) (model.Aggregator, func(), error) {
	switch name {
	case "duckdb":
		store, err := duckdb.NewStore()
		if err != nil {
			return nil, nil, model.NewError("open duckdb", model.KindInternal, err)
		}
		return duckdb.NewAggregator(store), func() { _ = store.Close() }, nil
	default:
		return dataset.MemoryAggregator{}, func() {}, nil
	}
}

// configureRuntimeLogger sends log output to path so it never draws over the
// terminal UI. It falls back to stderr when the file cannot be opened.
func configureRuntimeLogger(path string, debug bool) func() {
	flags := log.LstdFlags | log.Lmicroseconds
	if debug {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)

	if path == "" {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.SetOutput(os.Stderr)
		return func() {}
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}

func previewTable(records []model.Record) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(model.ColumnYear, model.ColumnRegion, model.ColumnCount, model.ColumnSourceLabel).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 0 || col == 2:
				return number
			default:
				return cell
			}
		})
	for _, r := range records {
		t.Row(strconv.Itoa(r.Year), r.Region, strconv.FormatInt(r.Count, 10), r.SourceLabel)
	}
	return t.Render()
}

func printReportBanner(out io.Writer, cfg appConfig, records []model.Record, aggregates []model.YearlyAggregate, aggregatorName string) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cyan := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	var lines []string
	lines = append(lines, "")
	lines = append(lines, "    "+cyan.Bold(true).Render(cfg.Title)+"  "+dim.Render("v"+version))
	lines = append(lines, "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator)
	lines = append(lines, "")

	// Data
	lines = append(lines, bold.Render("    Data"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Input          %s", check, dim.Render(shortenPath(cfg.Input))))
	lines = append(lines, fmt.Sprintf("    %s  Records        %s", check, cyan.Render(strconv.Itoa(len(records)))))
	lines = append(lines, fmt.Sprintf("    %s  Source Label   %s", check, dim.Render(cfg.SourceLabel)))
	lines = append(lines, fmt.Sprintf("    %s  Aggregator     %s", check, dim.Render(aggregatorName)))
	if len(aggregates) > 0 {
		first, last := aggregates[0].Year, aggregates[len(aggregates)-1].Year
		_, total := dataset.Totals(nil, aggregates)
		lines = append(lines, fmt.Sprintf("    %s  Years          %s", check, cyan.Render(fmt.Sprintf("%d-%d (%d)", first, last, len(aggregates)))))
		lines = append(lines, fmt.Sprintf("    %s  Total          %s", check, cyan.Render(chart.FormatTotal(total))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Years          %s", dot, dim.Render("none")))
	}
	lines = append(lines, "")

	// Output
	lines = append(lines, bold.Render("    Output"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("    %s  Static         %s", check, dim.Render("terminal")))
	if cfg.PNGPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  PNG            %s", check, dim.Render(shortenPath(cfg.PNGPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  PNG            %s", dot, dim.Render("disabled")))
	}
	if cfg.SummaryPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Summary        %s", check, dim.Render(shortenPath(cfg.SummaryPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Summary        %s", dot, dim.Render("disabled")))
	}
	switch cfg.Interactive {
	case "web":
		lines = append(lines, fmt.Sprintf("    %s  Interactive    %s", check, cyan.Render("web "+cfg.WebAddr)))
	case "tui":
		lines = append(lines, fmt.Sprintf("    %s  Interactive    %s", check, dim.Render("terminal")))
	default:
		lines = append(lines, fmt.Sprintf("    %s  Interactive    %s", dot, dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"))
	lines = append(lines, "")
	if cfg.ConfigPath != "" {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", check, dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, fmt.Sprintf("    %s  Config File    %s", dot, dim.Render("default (no file)")))
	}
	lines = append(lines, fmt.Sprintf("    %s  Log File       %s", check, dim.Render(shortenPath(cfg.LogPath))))

	lines = append(lines, "")
	lines = append(lines, separator)
	if cfg.Interactive != "none" {
		lines = append(lines, "")
		lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to close the interactive chart"))
	}
	lines = append(lines, "")

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
