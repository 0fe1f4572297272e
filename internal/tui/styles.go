package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	ColorGold     = "220"
	ColorBlue     = "39"
	ColorWhite    = "255"
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorRed      = "196"
)

// Styles holds the styles used by the browser.
type Styles struct {
	Header   lipgloss.Style
	Mode     lipgloss.Style
	Count    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Dim      lipgloss.Style
	Label    lipgloss.Style
	Detail   lipgloss.Style
	Error    lipgloss.Style
}

// DefaultStyles returns the coloured styles.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGold)),
		Mode:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorBlue)),
		Count:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGold)),
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue)),
		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
	}
}

// NoColorStyles returns styles without colours, for NO_COLOR terminals.
func NoColorStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:   plain.Bold(true),
		Mode:     plain.Bold(true),
		Count:    plain,
		Selected: plain.Bold(true),
		Item:     plain,
		Dim:      plain,
		Label:    plain,
		Detail:   plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		Error:    plain,
	}
}
