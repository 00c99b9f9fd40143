// Package tui provides the terminal user interface around the squiggly sliders.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/squiggle-cli/squiggle/color"
	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/icon"
	"github.com/squiggle-cli/squiggle/style"
	"github.com/squiggle-cli/squiggle/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(padY, padX)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case playState:
		output = b.viewPlay()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) contentWidth() int {
	return max(b.width-2*padX, 0)
}

func (b *statefulBubble) title() string {
	name := "host"
	if b.options.Target != "" {
		name = util.FileStem(b.options.Target)
	}
	banner := style.Title(constant.Squiggle)
	room := b.contentWidth() - lipgloss.Width(banner) - 1
	return banner + " " + style.Truncate(room)(style.Fg(color.Of(b.accent().Color))(name))
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			b.title(),
			"",
			b.spinnerC.View() + " Opening",
		},
	)
}

func (b *statefulBubble) viewPlay() string {
	stateIcon := icon.Get(icon.Play)
	if b.status.Paused {
		stateIcon = icon.Get(icon.Pause)
	}
	timeLabel := b.timeLabel()
	gap := max(b.contentWidth()-lipgloss.Width(timeLabel)-lipgloss.Width(stateIcon), 1)
	timeRow := style.Faint(timeLabel) + strings.Repeat(" ", gap) + stateIcon

	controls := b.volumeC.String()
	if b.mirror != nil {
		mirror := lipgloss.JoinVertical(lipgloss.Left, "", b.mirrorC.String(), "", style.Faint("mirror"))
		controls = lipgloss.JoinHorizontal(lipgloss.Top, controls, strings.Repeat(" ", mirrorGap), mirror)
	}

	volumeRow := icon.Get(b.volume.Icon()) + " " + b.volume.Label()

	return b.renderLines(
		true,
		[]string{
			b.title(),
			"",
			b.progressC.String(),
			timeRow,
			"",
			controls,
			volumeRow,
		},
	)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError))
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			wrap.String(errorBody, b.contentWidth()),
		},
	)
}

// renderLines joins blocks top to bottom, pushing the help line to the bottom edge.
func (b *statefulBubble) renderLines(addHelp bool, blocks []string) string {
	l := strings.Join(blocks, "\n")
	if addHelp {
		h := strings.Count(l, "\n") + 1
		available := b.height - 2*padY - 1
		if available > h {
			l += strings.Repeat("\n", available-h)
		}
		l += "\n" + b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
