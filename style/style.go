// Package style wraps lipgloss in small render functions for the TUI chrome and the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/squiggle-cli/squiggle/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a render function with a foreground colour.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

// Truncate cuts a string to max cells, ending it with an ellipsis when it does.
func Truncate(max int) func(string) string {
	return func(s string) string {
		if max <= 0 {
			return ""
		}
		return truncate.StringWithTail(s, uint(max), "…")
	}
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// banner is the padded block used for headings.
func banner(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(fg).Background(bg).Padding(0, 1).Render(s) }
}

// Title renders the name of what is playing.
var Title = banner(color.New("230"), color.New("62"))

// ErrorTitle renders the heading of the failure view.
var ErrorTitle = banner(color.New("230"), color.Red)
