// Package tui provides the terminal user interface around the squiggly sliders.
package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/internal/ui"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/player"
	"github.com/squiggle-cli/squiggle/style"
	"github.com/squiggle-cli/squiggle/util"
	"github.com/squiggle-cli/squiggle/wave"
)

// frameMsg drives the animation loop.
type frameMsg time.Time

// openedMsg reports that the host accepted the target.
type openedMsg struct{}

// statusMsg carries one host snapshot.
type statusMsg player.Update

// exitMsg reports that the host session ended.
type exitMsg struct{}

// commandErrMsg reports a failed host command. It is not fatal.
type commandErrMsg struct {
	op  string
	err error
}

func (b *statefulBubble) nextFrame() tea.Cmd {
	fps := max(viper.GetInt(key.TUIFPS), 1)
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (b *statefulBubble) open() tea.Cmd {
	target := b.options.Target
	p := b.player
	return func() tea.Msg {
		if target == "" {
			return openedMsg{}
		}
		if err := p.Open(target); err != nil {
			return fmt.Errorf("open %s: %w", target, err)
		}
		log.Infof("opened %s", target)
		return openedMsg{}
	}
}

// startWatching begins polling the host and waits for the first snapshot.
func (b *statefulBubble) startWatching() tea.Cmd {
	interval := time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Millisecond
	b.watcher = player.Watch(b.player, max(interval, 50*time.Millisecond))
	return b.waitForStatus()
}

func (b *statefulBubble) waitForStatus() tea.Cmd {
	w, p := b.watcher, b.player
	return func() tea.Msg {
		select {
		case u := <-w.Updates():
			return statusMsg(u)
		case <-p.Wait():
			return exitMsg{}
		}
	}
}

// command runs a host call off the update loop.
func (b *statefulBubble) command(op string, f func(player.Player) error) tea.Cmd {
	p := b.player
	return func() tea.Msg {
		if err := f(p); err != nil {
			log.Warnf("%s: %v", op, err)
			return commandErrMsg{op: op, err: err}
		}
		return nil
	}
}

// applyStatus feeds a host snapshot to the sliders.
func (b *statefulBubble) applyStatus(s player.Status) {
	b.status = s
	b.progress.SetPlaying(!s.Paused)
	if s.Duration > 0 {
		b.progress.SetProgress(s.Progress())
	}
	if !b.volume.Dragging() {
		b.volume.SetVolume(s.Volume)
	}
}

func (b *statefulBubble) onSeekEnd(progress float64) {
	b.preview = mo.None[float64]()
	if b.status.Duration <= 0 {
		return
	}
	seconds := progress * b.status.Duration
	b.queue(b.command("seek", func(p player.Player) error { return p.Seek(seconds) }))
}

func (b *statefulBubble) onVolumeChange(volume int) {
	b.queue(b.command("volume", func(p player.Player) error { return p.SetVolume(volume) }))
}

func (b *statefulBubble) onMuteToggle(muted bool) {
	if muted {
		b.queue(ui.Notify("Muted"))
	} else {
		b.queue(ui.Notify("Unmuted"))
	}
}

// seekBy skips delta seconds, showing the new position at once.
func (b *statefulBubble) seekBy(delta float64) tea.Cmd {
	if b.status.Duration <= 0 {
		return nil
	}
	seconds := util.Clamp(b.status.TimePos+delta, 0, b.status.Duration)
	b.status.TimePos = seconds
	b.progress.SetProgress(seconds / b.status.Duration)
	return b.command("seek", func(p player.Player) error { return p.Seek(seconds) })
}

// changeVolume steps the volume and tells the host.
func (b *statefulBubble) changeVolume(delta int) tea.Cmd {
	volume := util.Clamp(b.volume.Volume()+delta, 0, 100)
	b.volume.SetVolume(volume)
	return b.command("volume", func(p player.Player) error { return p.SetVolume(volume) })
}

// cycleColor persists the next accent and recolours every slider.
func (b *statefulBubble) cycleColor() tea.Cmd {
	next := style.NextAccent(b.progress.Config().Active.String())
	if err := b.progress.SetColor(next); err != nil {
		log.Warnf("save colour: %v", err)
		return ui.Notify(fmt.Sprintf("Colour not saved: %v", err))
	}

	paint := b.progress.Config().Active
	b.volume.SetActiveColor(paint)
	if b.mirror != nil {
		b.mirror.SetActiveColor(paint)
	}
	return ui.Notify("Colour " + next)
}

// timeLabel shows the drag preview while seeking, the host position otherwise.
func (b *statefulBubble) timeLabel() string {
	pos := b.status.TimePos
	if p, ok := b.preview.Get(); ok {
		pos = p * b.status.Duration
	}
	return util.FormatTime(pos) + " / " + util.FormatTime(b.status.Duration)
}

func describe(err error) string {
	if errors.Is(err, player.ErrNotPlaying) {
		return "Nothing is playing"
	}
	return err.Error()
}

// accent returns the active colour for chrome that should match the sliders.
func (b *statefulBubble) accent() wave.Paint {
	return b.progress.Config().Active
}
