// Package style provides a functional API for composing and applying lipgloss-based TUI styles.
package style

import "github.com/charmbracelet/lipgloss"

// Chrome colours for everything around the sliders.
var (
	Text        = lipgloss.Color("#cdd6f4")
	AccentColor = lipgloss.Color("#cba6f7")
	ErrorColor  = lipgloss.Color("#f38ba8")
)

// Accents is the ring of active colours the colour key steps through.
// The first entry matches the default colors.active value.
var Accents = []string{
	"#00ff88",
	"#89b4fa",
	"#cba6f7",
	"#f5c2e7",
	"#fab387",
	"#f9e2af",
	"#94e2d5",
}

// NextAccent returns the accent after current, wrapping around. Unknown colours restart the ring.
func NextAccent(current string) string {
	for i, c := range Accents {
		if c == current {
			return Accents[(i+1)%len(Accents)]
		}
	}
	return Accents[0]
}
