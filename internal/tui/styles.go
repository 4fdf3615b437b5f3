package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorBlue  = lipgloss.Color("39")
	ColorGray  = lipgloss.Color("240")
	ColorDim   = lipgloss.Color("244")
	ColorWhite = lipgloss.Color("15")
	ColorAmber = lipgloss.Color("220")
)

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	sectionStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(ColorWhite)
	dimStyle      = lipgloss.NewStyle().Foreground(ColorDim)
	warnStyle     = lipgloss.NewStyle().Foreground(ColorAmber)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
)

// frame is the width and height sectionStyle adds around its content.
const (
	frameWidth  = 4
	frameHeight = 2
)
