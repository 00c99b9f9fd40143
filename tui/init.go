// Package tui provides the terminal user interface around the squiggly sliders.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init opens the target on the host and starts the animation loop.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.open(), b.nextFrame())
}
