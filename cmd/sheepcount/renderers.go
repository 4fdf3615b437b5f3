package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/httpserver"
	"github.com/tinytelemetry/sheepcount/internal/model"
	"github.com/tinytelemetry/sheepcount/internal/tui"
)

// RendererPlugin is a small plugin primitive for wiring chart outputs.
type RendererPlugin interface {
	Name() string
	Enabled() bool
	Render(ctx context.Context, aggregates []model.YearlyAggregate) error
}

// preflighter is implemented by plugins that can fail for reasons outside the
// data. Preflight runs before the report writes any file.
type preflighter interface {
	Preflight() error
}

// preflightRenderers checks every enabled plugin that supports it.
func preflightRenderers(plugins []RendererPlugin) error {
	for _, plugin := range plugins {
		if !plugin.Enabled() {
			continue
		}
		if p, ok := plugin.(preflighter); ok {
			if err := p.Preflight(); err != nil {
				return fmt.Errorf("%s renderer: %w", plugin.Name(), err)
			}
		}
	}
	return nil
}

// RendererPluginConfig defines runtime output selection.
type RendererPluginConfig struct {
	Spec        model.ChartSpec
	Out         io.Writer
	ChartWidth  int
	ChartHeight int
	PNGPath     string
	Interactive string
	WebAddr     string
	OpenBrowser bool
}

// buildRendererPlugins returns the static renderers followed by the
// interactive ones, in the order they run.
func buildRendererPlugins(cfg RendererPluginConfig) []RendererPlugin {
	plugins := make([]RendererPlugin, 0, 4)
	plugins = append(plugins, terminalRendererPlugin{
		renderer: &chart.TerminalRenderer{
			Out:    cfg.Out,
			Width:  cfg.ChartWidth,
			Height: cfg.ChartHeight,
			Spec:   cfg.Spec,
		},
	})
	plugins = append(plugins, pngRendererPlugin{
		renderer: &chart.PNGRenderer{Path: cfg.PNGPath, Spec: cfg.Spec},
	})
	plugins = append(plugins, tuiRendererPlugin{
		spec:    cfg.Spec,
		enabled: cfg.Interactive == "tui",
	})
	plugins = append(plugins, webRendererPlugin{
		opts: httpserver.ServeOptions{
			Addr:        cfg.WebAddr,
			Spec:        cfg.Spec,
			OpenBrowser: cfg.OpenBrowser,
			Out:         cfg.Out,
		},
		enabled: cfg.Interactive == "web",
	})
	return plugins
}

type terminalRendererPlugin struct {
	renderer *chart.TerminalRenderer
}

func (p terminalRendererPlugin) Name() string { return "terminal" }

func (p terminalRendererPlugin) Enabled() bool { return p.renderer.Out != nil }

func (p terminalRendererPlugin) Render(ctx context.Context, aggregates []model.YearlyAggregate) error {
	return p.renderer.Render(ctx, aggregates)
}

type pngRendererPlugin struct {
	renderer *chart.PNGRenderer
}

func (p pngRendererPlugin) Name() string { return "png" }

func (p pngRendererPlugin) Enabled() bool { return p.renderer.Path != "" }

func (p pngRendererPlugin) Preflight() error {
	return checkParentDir("render png", model.KindRender, p.renderer.Path)
}

func (p pngRendererPlugin) Render(ctx context.Context, aggregates []model.YearlyAggregate) error {
	return p.renderer.Render(ctx, aggregates)
}

type tuiRendererPlugin struct {
	spec    model.ChartSpec
	enabled bool
}

func (p tuiRendererPlugin) Name() string { return "tui" }

func (p tuiRendererPlugin) Enabled() bool { return p.enabled }

func (p tuiRendererPlugin) Preflight() error {
	if !isTerminal(os.Stdout) {
		return model.NewError("render interactive", model.KindRender, tui.ErrNoTerminal)
	}
	return nil
}

func (p tuiRendererPlugin) Render(ctx context.Context, aggregates []model.YearlyAggregate) error {
	if err := p.Preflight(); err != nil {
		return err
	}
	return tui.Run(ctx, aggregates, tui.Options{Spec: p.spec})
}

type webRendererPlugin struct {
	opts    httpserver.ServeOptions
	enabled bool
}

func (p webRendererPlugin) Name() string { return "web" }

func (p webRendererPlugin) Enabled() bool { return p.enabled }

func (p webRendererPlugin) Preflight() error {
	return httpserver.CheckAddr(p.opts.Addr)
}

func (p webRendererPlugin) Render(ctx context.Context, aggregates []model.YearlyAggregate) error {
	return httpserver.Serve(ctx, aggregates, p.opts)
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// checkParentDir fails unless the directory that will hold path exists.
func checkParentDir(op string, kind model.Kind, path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return &model.OpError{Op: op, Kind: kind, Path: path, Err: err}
	}
	if !info.IsDir() {
		return &model.OpError{Op: op, Kind: kind, Path: path, Err: fmt.Errorf("%s is not a directory", dir)}
	}
	return nil
}
