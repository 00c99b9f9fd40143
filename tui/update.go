// Package tui provides the terminal user interface around the squiggly sliders.
package tui

import (
	"errors"
	"fmt"
	"time"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/input"
	"github.com/squiggle-cli/squiggle/internal/ui"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/player"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case frameMsg:
		b.frames.Step(time.Time(msg))
		cmds = append(cmds, b.nextFrame())
	case spinner.TickMsg:
		if b.state == loadingState {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			cmds = append(cmds, cmd)
		}
	case openedMsg:
		b.newState(playState)
		cmds = append(cmds, b.startWatching())
	case statusMsg:
		cmds = append(cmds, b.updateStatus(player.Update(msg)), b.waitForStatus())
	case exitMsg:
		return b, tea.Quit
	case commandErrMsg:
		cmds = append(cmds, ui.Notify(fmt.Sprintf("%s failed: %s", msg.op, describe(msg.err))))
	case tea.MouseMsg:
		cmds = append(cmds, b.updateMouse(msg))
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}

		switch b.state {
		case playState:
			cmds = append(cmds, b.updatePlay(msg))
		default:
			if bubblesKey.Matches(msg, b.keymap.quit) {
				return b, tea.Quit
			}
		}
	}

	cmds = append(cmds, b.flush())
	return b, tea.Batch(cmds...)
}

// updateStatus applies a snapshot. Idle hosts are expected and stay quiet.
func (b *statefulBubble) updateStatus(u player.Update) tea.Cmd {
	switch {
	case u.Err == nil:
		b.applyStatus(u.Status)
	case errors.Is(u.Err, player.ErrNotPlaying):
		b.progress.SetPlaying(false)
	default:
		log.Warnf("poll: %v", u.Err)
		return ui.Notify(describe(u.Err))
	}
	return nil
}

func (b *statefulBubble) updatePlay(msg tea.KeyMsg) tea.Cmd {
	k := b.keymap
	seekStep := float64(viper.GetInt(key.TUISeekStep))
	volumeStep := viper.GetInt(key.VolumeStep)

	switch {
	case bubblesKey.Matches(msg, k.quit):
		return tea.Quit
	case bubblesKey.Matches(msg, k.playPause):
		return b.command("pause", func(p player.Player) error { return p.TogglePause() })
	case bubblesKey.Matches(msg, k.seekBack):
		return b.seekBy(-seekStep)
	case bubblesKey.Matches(msg, k.seekForward):
		return b.seekBy(seekStep)
	case bubblesKey.Matches(msg, k.volumeUp):
		return b.changeVolume(volumeStep)
	case bubblesKey.Matches(msg, k.volumeDown):
		return b.changeVolume(-volumeStep)
	case bubblesKey.Matches(msg, k.mute):
		b.volume.ToggleMute()
	case bubblesKey.Matches(msg, k.cycleColor):
		return b.cycleColor()
	case bubblesKey.Matches(msg, k.toggleAnimate):
		b.setAnimate(!b.animate)
		if b.animate {
			return ui.Notify("Animation on")
		}
		return ui.Notify("Animation off")
	case bubblesKey.Matches(msg, k.showHelp):
		b.helpC.ShowAll = !b.helpC.ShowAll
	}
	return nil
}

// updateMouse converts a cell-level mouse event to a dot-level pointer event
// at the centre of the cell.
func (b *statefulBubble) updateMouse(msg tea.MouseMsg) tea.Cmd {
	if b.state != playState {
		return nil
	}

	ev := input.Event{
		X:      float64(msg.X*dotsPerCol + dotsPerCol/2),
		Y:      float64(msg.Y*dotsPerRow + dotsPerRow/2),
		Source: input.Mouse,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return b.changeVolume(viper.GetInt(key.VolumeStep))
		case tea.MouseButtonWheelDown:
			return b.changeVolume(-viper.GetInt(key.VolumeStep))
		case tea.MouseButtonLeft:
			ev.Action = input.Press
		default:
			return nil
		}
	case tea.MouseActionMotion:
		ev.Action = input.Motion
	case tea.MouseActionRelease:
		ev.Action = input.Release
	default:
		return nil
	}

	b.window.Dispatch(ev)
	return nil
}
