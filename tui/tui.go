// Package tui provides the terminal user interface around the squiggly sliders.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/squiggle-cli/squiggle/player"
	"github.com/squiggle-cli/squiggle/settings"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Target is handed to Player.Open. Empty means the host is already playing.
	Target string
	Player player.Player
	Store  settings.Store
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble, err := newBubble(options)
	if err != nil {
		return err
	}
	defer bubble.close()

	_, err = tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		return err
	}
	return bubble.lastError
}
