package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

const versionTemplate = `Sheepcount - Yearly Sheep Count Report
  Version:    {{.Version}}
  Commit:     {{index .Annotations "commit"}}
  Built:      {{index .Annotations "buildTime"}}
  Go version: {{index .Annotations "goVersion"}}
`

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "sheepcount [csv-path]",
		Short: "Aggregate sheep counts per year and chart them",
		Long: `sheepcount loads a three-column CSV (year, region, count), tags every row
with a source label, sums the counts per year and draws a static line chart
followed by an interactive one.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Annotations: map[string]string{
			"commit":    commit,
			"buildTime": buildTime,
			"goVersion": goVersion,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, cmd, args)
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate(versionTemplate)

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/sheepcount/config.yml)")
	f.String("input", model.DefaultInputPath, "CSV file to load (the positional argument wins)")
	f.String("source-label", model.DefaultSourceLabel, "label attached to every record")
	f.String("title", model.DefaultTitle, "chart title")
	f.Float64("y-min", model.DefaultYMin, "interactive chart y-axis minimum")
	f.Float64("y-max", model.DefaultYMax, "interactive chart y-axis maximum")
	f.String("interactive", defaultInteractive, "interactive backend: tui, web or none")
	f.String("png-path", "", "also save the static chart as a PNG image")
	f.String("summary-path", "", "write a YAML summary of the yearly totals")
	f.Int("preview-rows", model.DefaultPreviewRows, "annotated rows to preview (0 disables)")
	f.String("aggregator", defaultAggregator, "aggregation engine: memory or duckdb")
	f.String("web-addr", model.DefaultWebAddr, "listen address for the web backend")
	f.Bool("open-browser", false, "open the system browser for the web backend")
	f.Int("chart-width", model.DefaultChartWidth, "static terminal chart width")
	f.Int("chart-height", model.DefaultChartHeight, "static terminal chart height")
	f.String("log-path", "", "log file (default is $HOME/.local/state/sheepcount/sheepcount.log)")
	f.Bool("debug", false, "include source locations in log lines")

	return cmd
}
