// Package ui renders the monitor's terminal frames with lipgloss and
// drives the terminal itself (raw mode, alternate screen) with termenv.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan

	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Thresholds for metric severity levels, in percent.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Base styles for the dashboard.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Background(ColorSecondary).
				Bold(true)

	TreeNameStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	TreeGlyphStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FallbackBadgeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(ColorWarning).
				Bold(true).
				Padding(0, 1)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Tree branch glyphs.
const (
	GlyphExpanded  = "▾"
	GlyphCollapsed = "▸"
	GlyphLeaf      = "·"
)

// MetricColor returns the color for a percentage-based metric. Negative
// percentages mean "no limit" and render muted.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent < 0:
		return ColorMuted
	case percent >= CriticalThreshold:
		return ColorError
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// MetricStyle returns a style with the appropriate foreground color.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a thin line-based bar with threshold coloring.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	p := percent
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}

	filled := int(p / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "━"
		} else {
			bar += "─"
		}
	}
	return lipgloss.NewStyle().Foreground(MetricColor(percent)).Render(bar)
}
