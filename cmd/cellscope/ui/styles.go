// Package ui implements the interactive terminal interface: the grid view
// with its discovery sidebar and toasts, the run browser, the statistics
// page, and the shared visual theme.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AgeColors is the gradient for live cells, young to old. A cell's age
// indexes directly into this slice (ages saturate at the last entry).
var AgeColors = []lipgloss.Color{
	"#39ff14", // just born: neon green
	"#00e676", // emerald
	"#00c8c8", // teal
	"#00b4ff", // sky blue
	"#508cff", // cornflower
	"#7864ff", // indigo
	"#aa46ff", // violet
	"#d232d2", // magenta
	"#ff3296", // hot pink
	"#ff5050", // elder: warm red
}

// TrailColors is the fade-out for recently dead cells, freshest first.
var TrailColors = []lipgloss.Color{
	"#5a3a1e",
	"#46281a",
	"#321c14",
	"#28160e",
}

// Theme holds the base color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// DarkTheme returns the dark scheme (the native look for a Life grid).
func DarkTheme() Theme {
	return Theme{
		Background: "#0a0a0a",
		Foreground: "#b4b4b4",
		Primary:    "#64c8ff",
		Accent:     "#28b450",
		Muted:      "#555566",
		Border:     "#2a2a32",
		IsDark:     true,
	}
}

// LightTheme returns the light scheme.
func LightTheme() Theme {
	return Theme{
		Background: "#f4f5f6",
		Foreground: "#22262e",
		Primary:    "#1464a0",
		Accent:     "#2e8b57",
		Muted:      "#8a8f98",
		Border:     "#d0d4da",
		IsDark:     false,
	}
}

// DetectTheme picks a theme from the terminal background, honoring the
// CELLSCOPE_DARK_MODE override.
func DetectTheme(forceDark bool) Theme {
	if forceDark || os.Getenv("CELLSCOPE_DARK_MODE") == "1" {
		return DarkTheme()
	}
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is "foreground;background"; low background indexes are
		// dark terminal backgrounds.
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bg, err := strconv.Atoi(parts[1]); err == nil {
				if bg == 7 || bg >= 9 {
					return LightTheme()
				}
				return DarkTheme()
			}
		}
	}
	return DarkTheme() // a black grid reads best when the terminal is unknown
}

// Styles holds every styled component used by the pages.
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Footer    lipgloss.Style

	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Accent   lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
	ErrorMsg lipgloss.Style

	DeadCell  lipgloss.Style
	AgeCells  []lipgloss.Style
	Trails    []lipgloss.Style
	Cursor    lipgloss.Style
	GridFrame lipgloss.Style

	SidebarFrame  lipgloss.Style
	SidebarHeader lipgloss.Style
	SidebarEntry  lipgloss.Style

	Toast lipgloss.Style

	Prompt lipgloss.Style
}

// NewStyles builds the component styles for a theme.
func NewStyles(theme Theme) Styles {
	ageCells := make([]lipgloss.Style, len(AgeColors))
	for i, c := range AgeColors {
		ageCells[i] = lipgloss.NewStyle().Foreground(c)
	}
	trails := make([]lipgloss.Style, len(TrailColors))
	for i, c := range TrailColors {
		trails[i] = lipgloss.NewStyle().Foreground(c)
	}

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),
		Accent: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#39ff14")).
			Bold(true),
		Paused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffa032")).
			Bold(true),
		ErrorMsg: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")).
			Bold(true),

		DeadCell: lipgloss.NewStyle().
			Foreground(theme.Border),
		AgeCells: ageCells,
		Trails:   trails,
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		GridFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		SidebarFrame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
		SidebarHeader: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		SidebarEntry: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#b4ffb4")).
			Background(lipgloss.Color("#1e3c1e")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3cb43c")).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}

// DefaultStyles returns styles using the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme(false))
}
