// Package ui provides state management and rendering for short-lived status line notices.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/squiggle-cli/squiggle/style"
)

// Lifetime is how long a notice stays on screen.
const Lifetime = 3 * time.Second

// Model holds the notice currently shown, if any.
type Model struct {
	notification string
	generation   int
}

// NotificationMsg shows Text until it expires.
type NotificationMsg struct {
	Text string
}

// ClearNotificationMsg expires the notice with the matching generation.
type ClearNotificationMsg struct {
	generation int
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

func clearAfter(generation int) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{generation: generation}
	})
}

// Update processes incoming messages to modify the notification state.
// A newer notice is not cleared by an older notice's timer.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = msg.Text
		m.generation++
		return clearAfter(m.generation)
	case ClearNotificationMsg:
		if msg.generation == m.generation {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the notice being shown, or an empty string.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notice, faint, to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
