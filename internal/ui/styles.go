package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Single amber accent over grays.
const (
	ColorAmber    = "214" // Primary accent
	ColorAmberDim = "136" // Dimmed accent for borders
	ColorWhite    = "255" // Headers, selected text
	ColorGray     = "245" // Secondary text, labels
	ColorDarkGray = "238" // Borders, separators
	ColorRed      = "196" // Errors
)

// Styles holds all TUI rendering styles.
type Styles struct {
	Header   lipgloss.Style
	Prompt   lipgloss.Style
	Selected lipgloss.Style
	Result   lipgloss.Style
	Score    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Panel    lipgloss.Style
}

// DefaultStyles returns styled components for TUI mode.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAmber)),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAmber)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)).Background(lipgloss.Color(ColorAmberDim)),
		Result:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Score:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Value:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
	}
}

// NoColorStyles returns unstyled components for plain terminals.
func NoColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle(),
		Prompt:   lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Reverse(true),
		Result:   lipgloss.NewStyle(),
		Score:    lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle(),
		Value:    lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Help:     lipgloss.NewStyle(),
		Panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder()),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
