// Package ui holds the color palettes shared by the line-oriented CLI and the
// interactive TUI. The CLI palette is raw ANSI escape codes; the TUI palette
// is lipgloss colors. Both collapse to no color when --no-color or NO_COLOR
// is in effect.
package ui
