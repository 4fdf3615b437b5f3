package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen (chart, table).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
}

// Page identifiers.
const (
	PageChart = "chart"
	PageTable = "table"
)

// nextPage returns the page that follows id in tab order.
func nextPage(id string) string {
	if id == PageChart {
		return PageTable
	}
	return PageChart
}
