// Package tui provides the terminal user interface around the squiggly sliders.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/canvas"
	"github.com/squiggle-cli/squiggle/frame"
	"github.com/squiggle-cli/squiggle/input"
	"github.com/squiggle-cli/squiggle/internal/ui"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/player"
	"github.com/squiggle-cli/squiggle/settings"
	"github.com/squiggle-cli/squiggle/slider"
	"github.com/squiggle-cli/squiggle/util"
	"github.com/squiggle-cli/squiggle/wave"
	"github.com/squiggle-cli/squiggle/where"
)

// A terminal cell holds a 2x4 braille dot grid.
const (
	dotsPerCol = 2
	dotsPerRow = 4
)

// Layout, in cells, relative to the padded content area.
const (
	padX, padY   = 2, 1
	progressRow  = 2
	progressRows = 2
	volumeRow    = 6
	volumeCols   = 20
	volumeRows   = 4
	mirrorGap    = 4
	mirrorCols   = 24
)

// box is a slider container whose bounds follow the terminal layout.
type box struct {
	rect input.Rect
}

func (b *box) Bounds() input.Rect { return b.rect }

// statefulBubble encapsulates the application state: the sliders, the host and the chrome.
type statefulBubble struct {
	state  state
	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	helpC    help.Model
	notifier *ui.Model

	frames *frame.Loop
	window *input.Window

	progressBox, volumeBox, mirrorBox *box
	progressC, volumeC, mirrorC       *canvas.Canvas

	progress *slider.Progress
	volume   *slider.Volume
	mirror   *slider.Mirror
	sync     *slider.Sync

	player  player.Player
	watcher *player.Watcher
	status  player.Status
	preview mo.Option[float64]
	animate bool

	// queued collects commands raised by slider callbacks during Update.
	queued []tea.Cmd

	lastError     error
	width, height int

	options *Options
}

// raiseError records a fatal error and switches to the failure view.
func (b *statefulBubble) raiseError(err error) {
	log.Error(err)
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) newState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// queue schedules cmd to be returned from the current Update.
func (b *statefulBubble) queue(cmd tea.Cmd) {
	b.queued = append(b.queued, cmd)
}

func (b *statefulBubble) flush() tea.Cmd {
	cmds := b.queued
	b.queued = nil
	return tea.Batch(cmds...)
}

// layout places the slider boxes for a terminal cols cells wide.
func (b *statefulBubble) layout(cols int) {
	content := max(cols-2*padX, 1)

	b.progressBox.rect = input.Rect{
		X: padX * dotsPerCol,
		Y: (padY + progressRow) * dotsPerRow,
		W: float64(content * dotsPerCol),
		H: progressRows * dotsPerRow,
	}
	b.volumeBox.rect = input.Rect{
		X: padX * dotsPerCol,
		Y: (padY + volumeRow) * dotsPerRow,
		W: volumeCols * dotsPerCol,
		H: volumeRows * dotsPerRow,
	}
	mirror := util.Clamp(content-volumeCols-mirrorGap, 0, mirrorCols)
	b.mirrorBox.rect = input.Rect{
		X: (padX + volumeCols + mirrorGap) * dotsPerCol,
		Y: (padY + volumeRow + 1) * dotsPerRow,
		W: float64(mirror * dotsPerCol),
		H: dotsPerRow,
	}
}

// resize propagates terminal dimension changes to the layout and the sliders.
func (b *statefulBubble) resize(width, height int) {
	b.width, b.height = width, height
	b.layout(width)
	b.helpC.Width = max(width-2*padX, 0)
	b.window.Resize(float64(width*dotsPerCol), float64(height*dotsPerRow))
}

// waveOptions turns the wave.* and colors.* keys into slider options.
// Colours that fail to parse are logged and left at their defaults.
func waveOptions() []wave.Option {
	opts := []wave.Option{
		wave.WithStrokeWidth(viper.GetFloat64(key.WaveStrokeWidth)),
		wave.WithWavelength(viper.GetFloat64(key.WaveWavelength)),
		wave.WithAmplitude(viper.GetFloat64(key.WaveAmplitude)),
		wave.WithAnimationDuration(time.Duration(viper.GetInt(key.WaveAnimationDuration)) * time.Millisecond),
	}

	colors := []struct {
		name   string
		option func(wave.Paint) wave.Option
	}{
		{key.ColorsActive, wave.WithActiveColor},
		{key.ColorsInactive, wave.WithInactiveColor},
		{key.ColorsThumb, wave.WithThumbColor},
	}
	for _, c := range colors {
		paint, err := wave.ParsePaint(viper.GetString(c.name))
		if err != nil {
			log.Warnf("%s: %v", c.name, err)
			continue
		}
		opts = append(opts, c.option(paint))
	}
	return opts
}

// newBubble builds the sliders and wires their callbacks to the host.
func newBubble(options *Options) (*statefulBubble, error) {
	store := options.Store
	if store == nil {
		store = settings.NewFile(where.Settings(), viper.GetString(key.SettingsKey))
	}

	bubble := &statefulBubble{
		keymap:      newStatefulKeymap(),
		notifier:    &ui.Model{},
		frames:      frame.New(),
		window:      input.NewWindow(0, 0),
		progressBox: &box{},
		volumeBox:   &box{},
		mirrorBox:   &box{},
		progressC:   canvas.New(0, 0),
		volumeC:     canvas.New(0, 0),
		mirrorC:     canvas.New(0, 0),
		player:      options.Player,
		animate:     viper.GetBool(key.WaveAnimate),
		options:     options,
	}

	bubble.helpC = help.New()
	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	env := slider.Env{
		Frames: bubble.frames,
		Window: bubble.window,
		Store:  store,
		FPS:    viper.GetInt(key.TUIFPS),
	}

	thumb := viper.GetFloat64(key.ThumbWidth)
	progressOpts := append(waveOptions(), wave.WithThumbSize(thumb, viper.GetFloat64(key.ThumbHeight)))
	progress, err := slider.NewProgress(bubble.progressC, bubble.progressBox, env, progressOpts...)
	if err != nil {
		return nil, err
	}
	progress.OnSeek = func(p float64) { bubble.preview = mo.Some(p) }
	progress.OnSeekEnd = bubble.onSeekEnd
	bubble.progress = progress

	volume, err := slider.NewVolume(bubble.volumeC, bubble.volumeBox, env, viper.GetInt(key.VolumeInitial),
		wave.WithStrokeWidth(viper.GetFloat64(key.WaveStrokeWidth)),
		wave.WithThumbRadius(viper.GetFloat64(key.VolumeThumbRadius)),
	)
	if err != nil {
		return nil, err
	}
	volume.OnChange = bubble.onVolumeChange
	volume.OnMuteToggle = bubble.onMuteToggle
	bubble.volume = volume
	volume.SetActiveColor(progress.Config().Active)

	if viper.GetBool(key.MirrorShow) {
		mirror, err := slider.NewMirror(bubble.mirrorC, bubble.mirrorBox, env)
		if err != nil {
			return nil, err
		}
		interval := time.Duration(viper.GetInt(key.MirrorPollInterval)) * time.Millisecond
		bubble.mirror = mirror
		bubble.sync = slider.NewSync(bubble.frames, progress, mirror, interval)
	}

	bubble.setAnimate(bubble.animate)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.newState(loadingState)
	return bubble, nil
}

func (b *statefulBubble) setAnimate(animate bool) {
	b.animate = animate
	b.progress.SetAnimate(animate)
	b.volume.SetAnimate(animate)
}

// close releases the sliders and the host.
func (b *statefulBubble) close() {
	if b.watcher != nil {
		b.watcher.Stop()
	}
	if b.sync != nil {
		b.sync.Close()
	}
	if b.mirror != nil {
		b.mirror.Close()
	}
	b.volume.Close()
	b.progress.Close()
	if b.player != nil {
		if err := b.player.Close(); err != nil {
			log.Warnf("close player: %v", err)
		}
	}
}
