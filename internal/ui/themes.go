package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the ANSI palette used by the line-oriented output.
// Each role maps to an escape code, or "" when colors are disabled.
type Theme struct {
	// Name identifies the theme.
	Name string
	// Index colors the "n(i)" label of a row.
	Index string
	// Value colors the Fibonacci value.
	Value string
	// Overflow colors the end-of-range notice.
	Overflow string
	// Muted is used for headers and secondary text.
	Muted string
	// Accent highlights prompts and titles.
	Accent string
	Error  string
	Bold   string
	Reset  string
}

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:     "dark",
		Index:    "\033[38;5;39m",  // Bright blue
		Value:    "\033[38;5;82m",  // Bright green
		Overflow: "\033[38;5;220m", // Yellow
		Muted:    "\033[38;5;245m", // Grey
		Accent:   "\033[38;5;208m", // Orange
		Error:    "\033[38;5;196m", // Red
		Bold:     "\033[1m",
		Reset:    "\033[0m",
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:     "light",
		Index:    "\033[38;5;27m",
		Value:    "\033[38;5;28m",
		Overflow: "\033[38;5;130m",
		Muted:    "\033[38;5;240m",
		Accent:   "\033[38;5;166m",
		Error:    "\033[38;5;124m",
		Bold:     "\033[1m",
		Reset:    "\033[0m",
	}

	// NoColorTheme disables all escape codes.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the scrolling list.
type TUITheme struct {
	Text     lipgloss.TerminalColor
	Border   lipgloss.TerminalColor
	Accent   lipgloss.TerminalColor
	Index    lipgloss.TerminalColor
	Value    lipgloss.TerminalColor
	Selected lipgloss.TerminalColor
	Overflow lipgloss.TerminalColor
	Dim      lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default TUI palette.
	DarkTUITheme = TUITheme{
		Text:     lipgloss.Color("#E0E0E0"),
		Border:   lipgloss.Color("#FF6600"),
		Accent:   lipgloss.Color("#FF8C00"),
		Index:    lipgloss.Color("#4488FF"),
		Value:    lipgloss.Color("#9ece6a"),
		Selected: lipgloss.Color("#303030"),
		Overflow: lipgloss.Color("#FFB347"),
		Dim:      lipgloss.Color("#666666"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:     lipgloss.NoColor{},
		Border:   lipgloss.NoColor{},
		Accent:   lipgloss.NoColor{},
		Index:    lipgloss.NoColor{},
		Value:    lipgloss.NoColor{},
		Selected: lipgloss.NoColor{},
		Overflow: lipgloss.NoColor{},
		Dim:      lipgloss.NoColor{},
	}
)

// CurrentTUITheme returns the TUI palette matching the active theme.
func CurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	if currentTheme.Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name: "dark", "light" or "none".
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	switch name {
	case LightTheme.Name:
		currentTheme = LightTheme
	case NoColorTheme.Name:
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme picks the theme from the --no-color flag and the NO_COLOR
// environment variable (https://no-color.org/). Either one disables colors.
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}
