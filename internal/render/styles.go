// Package render draws a laid-out day as terminal text.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colors, catppuccin mocha.
const (
	colorBg      = lipgloss.Color("#1e1e2e")
	colorFg      = lipgloss.Color("#cdd6f4")
	colorMuted   = lipgloss.Color("#6c7086")
	colorAccent  = lipgloss.Color("#89b4fa")
	colorSurface = lipgloss.Color("#313244")
	colorWarning = lipgloss.Color("#f9e2af")
)

// laneColors are used for appointments without a color of their own,
// picked by column so neighbouring lanes differ.
var laneColors = []lipgloss.Color{
	"#89b4fa", // blue
	"#a6e3a1", // green
	"#f5c2e7", // pink
	"#94e2d5", // teal
	"#fab387", // peach
	"#cba6f7", // mauve
}

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	HourLabel lipgloss.Style
	SlotLabel lipgloss.Style
	Box       lipgloss.Style
	Selected  lipgloss.Style
	Day       lipgloss.Style
	DayActive lipgloss.Style
	DayToday  lipgloss.Style
	Muted     lipgloss.Style
	Empty     lipgloss.Style
}

// DefaultStyles returns the dark palette styles.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Header:    lipgloss.NewStyle().Foreground(colorFg),
		HourLabel: lipgloss.NewStyle().Foreground(colorFg).Bold(true),
		SlotLabel: lipgloss.NewStyle().Foreground(colorMuted),
		Box:       lipgloss.NewStyle().Foreground(colorBg),
		Selected:  lipgloss.NewStyle().Foreground(colorBg).Background(colorWarning).Bold(true),
		Day:       lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		DayActive: lipgloss.NewStyle().Foreground(colorBg).Background(colorAccent).Bold(true).Padding(0, 1),
		DayToday:  lipgloss.NewStyle().Foreground(colorFg).Background(colorSurface).Padding(0, 1),
		Muted:     lipgloss.NewStyle().Foreground(colorMuted),
		Empty:     lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// boxStyle picks the style for one appointment box.
func (s Styles) boxStyle(color string, column int, selected bool) lipgloss.Style {
	if selected {
		return s.Selected
	}
	if isHexColor(color) {
		return s.Box.Background(lipgloss.Color(color))
	}
	return s.Box.Background(laneColors[column%len(laneColors)])
}

// isHexColor accepts #RGB and #RRGGBB.
func isHexColor(s string) bool {
	if len(s) != 4 && len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
