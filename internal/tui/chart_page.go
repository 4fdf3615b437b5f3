package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

// ChartPage shows the yearly totals as a zoomable line chart with a fixed y range.
type ChartPage struct {
	sel  *selection
	spec model.ChartSpec
	keys KeyMap
	help help.Model

	// chartWidth is the width passed to the last drawn line chart; mouse
	// hover maps columns back to years with it.
	chartWidth int
}

// NewChartPage creates the chart page.
func NewChartPage(sel *selection, spec model.ChartSpec, keys KeyMap) *ChartPage {
	return &ChartPage{sel: sel, spec: spec, keys: keys, help: help.New()}
}

func (p *ChartPage) ID() string { return PageChart }

func (p *ChartPage) Init() tea.Cmd { return nil }

func (p *ChartPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	case tea.MouseMsg:
		p.handleMouse(msg)
	}
	return nil, nil
}

func (p *ChartPage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	switch {
	case key.Matches(msg, p.keys.ForceQuit), key.Matches(msg, p.keys.Quit):
		return tea.Quit, nil
	case key.Matches(msg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll
	case key.Matches(msg, p.keys.NextPage):
		return nil, &PageNav{PageID: nextPage(p.ID())}
	case key.Matches(msg, p.keys.Left), key.Matches(msg, p.keys.Up):
		p.sel.move(-1)
	case key.Matches(msg, p.keys.Right), key.Matches(msg, p.keys.Down):
		p.sel.move(1)
	case key.Matches(msg, p.keys.Home):
		p.sel.jump(0)
	case key.Matches(msg, p.keys.End):
		p.sel.jump(p.sel.count() - 1)
	case key.Matches(msg, p.keys.PanLeft):
		p.sel.pan(-1)
	case key.Matches(msg, p.keys.PanRight):
		p.sel.pan(1)
	case key.Matches(msg, p.keys.ZoomIn):
		p.sel.zoomIn()
	case key.Matches(msg, p.keys.ZoomOut):
		p.sel.zoomOut()
	case key.Matches(msg, p.keys.ZoomReset):
		p.sel.reset()
	}
	return nil, nil
}

func (p *ChartPage) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		p.sel.zoomIn()
	case msg.Button == tea.MouseButtonWheelDown:
		p.sel.zoomOut()
	case msg.Action == tea.MouseActionMotion:
		if idx, ok := p.indexAt(msg.X); ok {
			p.sel.cursor = idx
		}
	}
}

// yLabelWidth is the width ntcharts reserves for y labels plus the axis.
func (p *ChartPage) yLabelWidth() int {
	return max(len(chart.FormatCount(p.spec.YMin)), len(chart.FormatCount(p.spec.YMax))) + 1
}

// indexAt maps a screen column to the nearest visible year.
func (p *ChartPage) indexAt(x int) (int, bool) {
	visible := p.sel.visible()
	if len(visible) == 0 || p.chartWidth <= 0 {
		return 0, false
	}

	left := frameWidth/2 + p.yLabelWidth()
	plotWidth := p.chartWidth - p.yLabelWidth()
	if plotWidth <= 0 || x < left || x > left+plotWidth {
		return 0, false
	}
	if len(visible) == 1 {
		return p.sel.lo, true
	}

	ratio := float64(x-left) / float64(plotWidth)
	first, last := float64(visible[0].Year), float64(visible[len(visible)-1].Year)
	year := first + ratio*(last-first)

	best, bestDist := p.sel.lo, math.Inf(1)
	for i, a := range visible {
		if d := math.Abs(float64(a.Year) - year); d < bestDist {
			best, bestDist = p.sel.lo+i, d
		}
	}
	return best, true
}

func (p *ChartPage) View(width, height int) string {
	if width <= 0 {
		width = model.DefaultChartWidth + frameWidth
	}
	if height <= 0 {
		height = model.DefaultChartHeight + frameHeight + 3
	}

	p.help.Width = width
	helpView := p.help.View(p.keys)

	chartWidth := max(20, width-frameWidth)
	chartHeight := max(5, height-frameHeight-2-lipgloss.Height(helpView))
	p.chartWidth = chartWidth

	visible := p.sel.visible()
	if len(visible) == 0 {
		return sectionStyle.Render(dimStyle.Render("No data available"))
	}

	bounds := chart.Bounds{
		XMin: float64(visible[0].Year),
		XMax: float64(visible[len(visible)-1].Year),
		YMin: p.spec.YMin,
		YMax: p.spec.YMax,
	}
	lc := chart.NewLineChart(p.sel.data, chartWidth, chartHeight, bounds)
	if cur, ok := p.sel.current(); ok {
		y := math.Max(p.spec.YMin, math.Min(p.spec.YMax, float64(cur.TotalCount)))
		lc.DrawRune(canvas.Float64Point{X: float64(cur.Year), Y: y}, '◆')
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		chartTitleStyle.Render(p.spec.Title),
		lc.View(),
		p.statusLine(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sectionStyle.Render(body), helpView)
}

func (p *ChartPage) statusLine() string {
	cur, ok := p.sel.current()
	if !ok {
		return dimStyle.Render("No data available")
	}

	parts := []string{
		selectedStyle.Render(fmt.Sprintf("%d", cur.Year)),
		statusStyle.Render(chart.FormatTotal(cur.TotalCount)),
	}
	if v := float64(cur.TotalCount); v > p.spec.YMax || v < p.spec.YMin {
		parts = append(parts, warnStyle.Render("outside chart range"))
	}

	visible := p.sel.visible()
	view := fmt.Sprintf("view %d-%d", visible[0].Year, visible[len(visible)-1].Year)
	if z := p.sel.zoom(); z > 1 {
		view += fmt.Sprintf(" (%.1fx)", z)
	}
	parts = append(parts, dimStyle.Render(view))

	return strings.Join(parts, dimStyle.Render("  ·  "))
}
