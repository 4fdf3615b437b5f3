package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

// TablePage lists the yearly totals with the change from the previous year.
// It shares its cursor with the chart page.
type TablePage struct {
	sel    *selection
	spec   model.ChartSpec
	keys   KeyMap
	help   help.Model
	offset int
}

// NewTablePage creates the table page.
func NewTablePage(sel *selection, spec model.ChartSpec, keys KeyMap) *TablePage {
	return &TablePage{sel: sel, spec: spec, keys: keys, help: help.New()}
}

func (p *TablePage) ID() string { return PageTable }

func (p *TablePage) Init() tea.Cmd { return nil }

func (p *TablePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	switch {
	case key.Matches(keyMsg, p.keys.ForceQuit), key.Matches(keyMsg, p.keys.Quit):
		return tea.Quit, nil
	case key.Matches(keyMsg, p.keys.Help):
		p.help.ShowAll = !p.help.ShowAll
	case key.Matches(keyMsg, p.keys.NextPage):
		return nil, &PageNav{PageID: nextPage(p.ID())}
	case key.Matches(keyMsg, p.keys.Up), key.Matches(keyMsg, p.keys.Left):
		p.sel.move(-1)
	case key.Matches(keyMsg, p.keys.Down), key.Matches(keyMsg, p.keys.Right):
		p.sel.move(1)
	case key.Matches(keyMsg, p.keys.Home):
		p.sel.jump(0)
	case key.Matches(keyMsg, p.keys.End):
		p.sel.jump(p.sel.count() - 1)
	}
	return nil, nil
}

// scrollTo keeps the cursor inside a window of rows lines.
func (p *TablePage) scrollTo(rows int) {
	if rows <= 0 {
		return
	}
	if p.sel.cursor < p.offset {
		p.offset = p.sel.cursor
	}
	if p.sel.cursor >= p.offset+rows {
		p.offset = p.sel.cursor - rows + 1
	}
	p.offset = max(0, min(p.offset, p.sel.count()-rows))
}

func (p *TablePage) View(width, height int) string {
	if height <= 0 {
		height = model.DefaultChartHeight + frameHeight + 3
	}

	p.help.Width = width
	helpView := p.help.View(p.keys)

	// title + table header and borders
	rows := max(1, height-frameHeight-1-4-lipgloss.Height(helpView))
	p.scrollTo(rows)

	end := min(p.sel.count(), p.offset+rows)
	data := make([][]string, 0, end-p.offset)
	for i := p.offset; i < end; i++ {
		a := p.sel.data[i]
		change := "-"
		if i > 0 {
			change = fmt.Sprintf("%+d", a.TotalCount-p.sel.data[i-1].TotalCount)
		}
		data = append(data, []string{fmt.Sprintf("%d", a.Year), chart.FormatTotal(a.TotalCount), change})
	}

	cursorRow := p.sel.cursor - p.offset
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("Year", "Total", "Change").
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return cellStyle.Bold(true).Foreground(ColorWhite)
			case row == cursorRow:
				return cellStyle.Inherit(selectedStyle)
			default:
				return cellStyle
			}
		})

	body := lipgloss.JoinVertical(lipgloss.Left,
		chartTitleStyle.Render(p.spec.Title),
		t.Render(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sectionStyle.Render(body), helpView)
}
