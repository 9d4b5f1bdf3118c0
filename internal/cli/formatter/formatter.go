// Package formatter styles terminal output for the habitd commands.
package formatter

import "github.com/charmbracelet/lipgloss"

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// Success renders a confirmation line.
func Success(s string) string {
	return StyleGreen.Render("✓") + " " + s
}

// Fail renders a failure line.
func Fail(s string) string {
	return StyleRed.Render("✗") + " " + s
}

// Block renders a multi-line message body.
func Block(s string) string {
	return StyleFg.Render(s)
}

// Header renders a section heading.
func Header(s string) string {
	return StyleHeader.Render(s)
}
