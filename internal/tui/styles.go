package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/faithmap/faithmap/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6")).
			MarginBottom(1)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	activeFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("11"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("5"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true).
			Padding(1, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1)
)

// typeColors follow the marker colours of the web map.
var typeColors = map[model.FacilityType]lipgloss.Color{
	model.Church:   lipgloss.Color("12"),
	model.Catholic: lipgloss.Color("13"),
	model.Temple:   lipgloss.Color("3"),
	model.Cult:     lipgloss.Color("9"),
}

func typeBadge(t model.FacilityType) string {
	return lipgloss.NewStyle().Foreground(typeColors[t]).Render("●")
}
