// Package theme holds the colors and shared styles of the PIN screen.
package theme

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	Pink     lipgloss.Color = "#f5c2e7"
	Mauve    lipgloss.Color = "#cba6f7"
	Red      lipgloss.Color = "#f38ba8"
	Peach    lipgloss.Color = "#fab387"
	Yellow   lipgloss.Color = "#f9e2af"
	Green    lipgloss.Color = "#a6e3a1"
	Teal     lipgloss.Color = "#94e2d5"
	Sky      lipgloss.Color = "#89dceb"
	Blue     lipgloss.Color = "#89b4fa"
	Lavender lipgloss.Color = "#b4befe"

	Text     lipgloss.Color = "#cdd6f4"
	Subtext0 lipgloss.Color = "#a6adc8"
	Overlay1 lipgloss.Color = "#7f849c"
	Overlay0 lipgloss.Color = "#6c7086"
	Surface1 lipgloss.Color = "#45475a"
	Surface0 lipgloss.Color = "#313244"
	Base     lipgloss.Color = "#1e1e2e"
	Mantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// PIN field defaults (mobile design tokens)
// ---------------------------------------------------------------------------

const (
	PinBorder  lipgloss.Color = "#828282"
	PinFocused lipgloss.Color = "#007548"
	PinError   lipgloss.Color = "#d40000"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	Accent  = Pink
	Focus   = Lavender
	Success = Green
	Error   = Red
	Warning = Yellow
	Muted   = Overlay1
	Panel   = Mantle
	Border  = Overlay0
)

var (
	Title   = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Hint    = lipgloss.NewStyle().Foreground(Muted)
	Key     = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Status  = lipgloss.NewStyle().Foreground(Success).Background(Surface0)
	StatusE = lipgloss.NewStyle().Foreground(Error).Background(Surface0)
	Alert   = lipgloss.NewStyle().Foreground(Error)
)

// Palette returns every named color for validation.
func Palette() []lipgloss.Color {
	return []lipgloss.Color{
		Pink, Mauve, Red, Peach, Yellow, Green, Teal, Sky, Blue, Lavender,
		Text, Subtext0, Overlay1, Overlay0, Surface1, Surface0, Base, Mantle,
		PinBorder, PinFocused, PinError,
	}
}
