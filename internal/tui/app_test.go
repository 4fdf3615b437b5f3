package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

func testSpec() model.ChartSpec {
	return model.ChartSpec{Title: model.DefaultTitle, YMin: model.DefaultYMin, YMax: model.DefaultYMax}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_TabSwitchesPages(t *testing.T) {
	t.Parallel()

	app := NewProgramModel(years(5), testSpec())
	if app.ActivePage() != PageChart {
		t.Fatalf("active page = %q, want %q", app.ActivePage(), PageChart)
	}

	app.Update(keyPress("tab"))
	if app.ActivePage() != PageTable {
		t.Fatalf("active page = %q, want %q", app.ActivePage(), PageTable)
	}

	app.Update(keyPress("tab"))
	if app.ActivePage() != PageChart {
		t.Fatalf("active page = %q, want %q", app.ActivePage(), PageChart)
	}
}

func TestApp_QuitReturnsQuitCmd(t *testing.T) {
	t.Parallel()

	for _, k := range []string{"q", "ctrl+c"} {
		app := NewProgramModel(years(3), testSpec())
		_, cmd := app.Update(keyPress(k))
		if cmd == nil {
			t.Fatalf("%s: expected a command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: expected tea.QuitMsg", k)
		}
	}
}

func TestChartPage_ViewShowsTitleAndCursor(t *testing.T) {
	t.Parallel()

	app := NewProgramModel(years(5), testSpec())
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app.Update(keyPress("left"))

	view := app.View()
	if !strings.Contains(view, "Sheep Counts in Turkey") {
		t.Fatalf("view missing title:\n%s", view)
	}
	if !strings.Contains(view, "2003") || !strings.Contains(view, "4,000,000") {
		t.Fatalf("status line should show the selected year and total:\n%s", view)
	}
}

func TestChartPage_FlagsValuesAboveRange(t *testing.T) {
	t.Parallel()

	data := []model.YearlyAggregate{{Year: 2015, TotalCount: 10}, {Year: 2016, TotalCount: 45_000_000}}
	app := NewProgramModel(data, testSpec())
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	if view := app.View(); !strings.Contains(view, "outside chart range") {
		t.Fatalf("expected out-of-range marker:\n%s", view)
	}
}

func TestChartPage_ZoomKeys(t *testing.T) {
	t.Parallel()

	sel := newSelection(years(8))
	page := NewChartPage(sel, testSpec(), DefaultKeyMap())

	page.Update(keyPress("+"))
	if sel.span() != 4 {
		t.Fatalf("span after + = %d, want 4", sel.span())
	}
	page.Update(keyPress("-"))
	if sel.span() != 8 {
		t.Fatalf("span after - = %d, want 8", sel.span())
	}
	page.Update(keyPress("+"))
	page.Update(keyPress("0"))
	if sel.span() != 8 {
		t.Fatalf("span after reset = %d, want 8", sel.span())
	}
}

func TestChartPage_MouseHoverSelectsYear(t *testing.T) {
	t.Parallel()

	sel := newSelection(years(5))
	page := NewChartPage(sel, testSpec(), DefaultKeyMap())
	page.View(80, 24)

	left := frameWidth/2 + page.yLabelWidth()
	page.Update(tea.MouseMsg{X: left + 1, Y: 5, Action: tea.MouseActionMotion})
	if sel.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 when hovering the left edge", sel.cursor)
	}

	page.Update(tea.MouseMsg{X: left + page.chartWidth - page.yLabelWidth(), Y: 5, Action: tea.MouseActionMotion})
	if sel.cursor != 4 {
		t.Fatalf("cursor = %d, want 4 when hovering the right edge", sel.cursor)
	}
}

func TestTablePage_SharesCursorWithChart(t *testing.T) {
	t.Parallel()

	app := NewProgramModel(years(4), testSpec())
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	app.Update(keyPress("tab"))
	app.Update(keyPress("k"))

	view := app.View()
	if !strings.Contains(view, "Change") || !strings.Contains(view, "+1000000") {
		t.Fatalf("table view missing expected content:\n%s", view)
	}

	app.Update(keyPress("tab"))
	if view := app.View(); !strings.Contains(view, "3,000,000") {
		t.Fatalf("chart status should follow the table cursor:\n%s", view)
	}
}
