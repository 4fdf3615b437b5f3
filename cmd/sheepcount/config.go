package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

const (
	defaultInteractive = "tui"
	defaultAggregator  = "memory"
)

var (
	interactiveBackends = []string{"tui", "web", "none"}
	aggregatorEngines   = []string{"memory", "duckdb"}
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Input       string  `mapstructure:"input"`
	SourceLabel string  `mapstructure:"source-label"`
	Title       string  `mapstructure:"title"`
	YMin        float64 `mapstructure:"y-min"`
	YMax        float64 `mapstructure:"y-max"`
	Interactive string  `mapstructure:"interactive"`
	PNGPath     string  `mapstructure:"png-path"`
	SummaryPath string  `mapstructure:"summary-path"`
	PreviewRows int     `mapstructure:"preview-rows"`
	Aggregator  string  `mapstructure:"aggregator"`
	WebAddr     string  `mapstructure:"web-addr"`
	OpenBrowser bool    `mapstructure:"open-browser"`
	ChartWidth  int     `mapstructure:"chart-width"`
	ChartHeight int     `mapstructure:"chart-height"`
	LogPath     string  `mapstructure:"log-path"`
	Debug       bool    `mapstructure:"debug"`
	ConfigPath  string  `mapstructure:"-"` // not from config file
}

func (c appConfig) chartSpec() model.ChartSpec {
	return model.ChartSpec{Title: c.Title, YMin: c.YMin, YMax: c.YMax}
}

// loadConfig resolves settings from, highest first: the positional argument,
// command-line flags, SHEEPCOUNT_* environment variables, the config file and
// built-in defaults. cmd may be nil.
func loadConfig(configPath string, cmd *cobra.Command, args []string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, configError(fmt.Errorf("finding home directory: %w", err))
	}

	v := viper.New()
	v.SetEnvPrefix("SHEEPCOUNT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("input", model.DefaultInputPath)
	v.SetDefault("source-label", model.DefaultSourceLabel)
	v.SetDefault("title", model.DefaultTitle)
	v.SetDefault("y-min", model.DefaultYMin)
	v.SetDefault("y-max", model.DefaultYMax)
	v.SetDefault("interactive", defaultInteractive)
	v.SetDefault("png-path", "")
	v.SetDefault("summary-path", "")
	v.SetDefault("preview-rows", model.DefaultPreviewRows)
	v.SetDefault("aggregator", defaultAggregator)
	v.SetDefault("web-addr", model.DefaultWebAddr)
	v.SetDefault("open-browser", false)
	v.SetDefault("chart-width", model.DefaultChartWidth)
	v.SetDefault("chart-height", model.DefaultChartHeight)
	v.SetDefault("log-path", filepath.Join(home, ".local", "state", "sheepcount", "sheepcount.log"))
	v.SetDefault("debug", false)

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return cfg, configError(fmt.Errorf("binding flags: %w", err))
		}
	}
	if len(args) > 0 && args[0] != "" {
		v.Set("input", args[0])
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "sheepcount", "config.yml"))
	}

	configRead := true
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, &model.OpError{Op: "load config", Kind: model.KindConfig, Path: v.ConfigFileUsed(), Err: err}
		}
		configRead = false
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configError(err)
	}
	if configRead {
		cfg.ConfigPath = v.ConfigFileUsed()
	}

	if err := cfg.validate(); err != nil {
		return cfg, configError(err)
	}

	cfg.Input = expandHome(home, cfg.Input)
	cfg.PNGPath = expandHome(home, cfg.PNGPath)
	cfg.SummaryPath = expandHome(home, cfg.SummaryPath)
	cfg.LogPath = expandHome(home, cfg.LogPath)

	return cfg, nil
}

func (c appConfig) validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input path is empty")
	}
	if c.YMax <= c.YMin {
		return fmt.Errorf("invalid y-max: %g must be greater than y-min %g", c.YMax, c.YMin)
	}
	if !slices.Contains(interactiveBackends, c.Interactive) {
		return fmt.Errorf("invalid interactive: %q (want one of %s)", c.Interactive, strings.Join(interactiveBackends, ", "))
	}
	if !slices.Contains(aggregatorEngines, c.Aggregator) {
		return fmt.Errorf("invalid aggregator: %q (want one of %s)", c.Aggregator, strings.Join(aggregatorEngines, ", "))
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("invalid preview-rows: %d", c.PreviewRows)
	}
	if c.ChartWidth < 20 || c.ChartHeight < 5 {
		return fmt.Errorf("invalid chart size: %dx%d (minimum 20x5)", c.ChartWidth, c.ChartHeight)
	}
	if _, _, err := net.SplitHostPort(c.WebAddr); err != nil {
		return fmt.Errorf("invalid web-addr %q: %w", c.WebAddr, err)
	}
	return nil
}

func configError(err error) error {
	return model.NewError("load config", model.KindConfig, err)
}

func expandHome(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
