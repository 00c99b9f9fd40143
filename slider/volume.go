package slider

import (
	"fmt"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/squiggle-cli/squiggle/icon"
	"github.com/squiggle-cli/squiggle/input"
	"github.com/squiggle-cli/squiggle/wave"
)

const (
	// edgeSnap is how close to either end of the arc a pointer must be to reach 0 or 100.
	edgeSnap = 0.05
	// unmuteFallback is the volume restored when nothing was remembered.
	unmuteFallback = 50
)

// Volume is the curved volume control.
type Volume struct {
	cfg       wave.Config
	renderer  *wave.CurvedRenderer
	surface   wave.Surface
	container Container

	control *Controller
	phase   wave.Phase
	animate bool

	volume     int
	lastVolume int
	muted      bool

	// OnChange fires when a drag ends and when mute is toggled.
	OnChange func(volume int)
	// OnMuteToggle fires after ToggleMute.
	OnMuteToggle func(muted bool)

	regs registrations
}

// NewVolume builds a volume arc showing initial (0-100; zero or less means 50).
func NewVolume(surface wave.Surface, container Container, env Env, initial int, opts ...wave.Option) (*Volume, error) {
	if err := validate("volume", surface, container); err != nil {
		return nil, err
	}
	if initial <= 0 {
		initial = unmuteFallback
	}
	cfg := wave.Volume(opts...)

	fit(surface, container)
	w, h := surface.Size()
	v := &Volume{
		cfg:        cfg,
		renderer:   wave.NewCurvedRenderer(cfg, w, h),
		surface:    surface,
		container:  container,
		control:    NewController(cfg.Amplitude, env.FPS),
		animate:    true,
		volume:     lo.Clamp(initial, 0, 100),
		lastVolume: lo.Clamp(initial, 0, 100),
	}
	v.regs.attach(env, v.Tick, v, func(float64, float64) { v.resize() })
	return v, nil
}

func (v *Volume) resize() {
	fit(v.surface, v.container)
	v.renderer.Fit(v.surface.Size())
}

// Volume returns the shown volume, 0-100.
func (v *Volume) Volume() int { return v.volume }

// Muted reports whether the control is muted.
func (v *Volume) Muted() bool { return v.muted }

// Dragging reports whether the user is dragging the thumb.
func (v *Volume) Dragging() bool { return v.control.Dragging() }

// Label is the caption shown next to the arc.
func (v *Volume) Label() string { return fmt.Sprintf("Vol: %d%%", v.volume) }

// Icon picks the speaker glyph for the current level.
func (v *Volume) Icon() icon.Icon { return icon.Level(v.volume) }

// SetVolume shows a host-reported volume. Positive values unmute.
func (v *Volume) SetVolume(volume int) {
	v.volume = lo.Clamp(volume, 0, 100)
	if v.volume > 0 {
		v.lastVolume = v.volume
		v.muted = false
	}
	v.Draw()
}

// ToggleMute mutes, remembering the volume, or restores the remembered volume.
func (v *Volume) ToggleMute() {
	if v.muted || v.volume == 0 {
		v.volume = v.lastVolume
		if v.volume <= 0 {
			v.volume = unmuteFallback
		}
		v.muted = false
	} else {
		v.lastVolume = v.volume
		v.volume = 0
		v.muted = true
	}
	if v.OnChange != nil {
		v.OnChange(v.volume)
	}
	if v.OnMuteToggle != nil {
		v.OnMuteToggle(v.muted)
	}
}

// SetAnimate freezes or resumes the wave.
func (v *Volume) SetAnimate(animate bool) { v.animate = animate }

// SetActiveColor recolours the arc without persisting anything.
func (v *Volume) SetActiveColor(p wave.Paint) {
	v.cfg.Active = p
	v.renderer.Config = v.cfg
}

// Tick advances one frame and redraws.
func (v *Volume) Tick(elapsed time.Duration) {
	if v.animate && Animates(elapsed) {
		v.phase = v.phase.Advance(elapsed, v.cfg.AnimationDuration)
		v.control.Tick()
	}
	v.Draw()
}

// Draw renders the current state without advancing it.
func (v *Volume) Draw() {
	v.renderer.Draw(v.surface, wave.CurvedFrame{
		Progress:  float64(v.volume) / 100,
		Amplitude: v.control.Amplitude.Current,
		Phase:     v.phase,
		Glow:      v.control.Glow(),
		Label:     fmt.Sprintf("%d%%", v.volume),
	})
}

// Bounds returns the container box the arc is hit-tested against.
func (v *Volume) Bounds() input.Rect { return v.container.Bounds() }

// PointerDown starts a drag at the pressed position on the arc.
func (v *Volume) PointerDown(ev input.Event) {
	v.control.Begin()
	v.pick(ev)
}

// PointerMove follows the pointer while dragging and reports whether it did.
func (v *Volume) PointerMove(ev input.Event) bool {
	if !v.control.Dragging() {
		return false
	}
	v.pick(ev)
	return true
}

// PointerUp ends a drag and commits the volume through OnChange.
func (v *Volume) PointerUp(input.Event) {
	if !v.control.End() {
		return
	}
	if v.OnChange != nil {
		v.OnChange(v.volume)
	}
}

// Hover turns the glow on or off.
func (v *Volume) Hover(h bool) { v.control.Hover(h) }

// pick maps the pointer onto the arc's horizontal span.
func (v *Volume) pick(ev input.Event) {
	b := v.container.Bounds()
	start, end := v.renderer.Curve.P0.X, v.renderer.Curve.P2.X
	if end <= start {
		return
	}

	progress := (ev.X - b.X - start) / (end - start)
	if progress < edgeSnap {
		progress = 0
	}
	if progress > 1-edgeSnap {
		progress = 1
	}
	volume := int(math.Round(lo.Clamp(progress, 0, 1) * 100))

	if volume != v.volume {
		v.volume = volume
		if volume > 0 {
			v.muted = false
			v.lastVolume = volume
		}
	}
}

// Close drops every registration. It is safe to call twice.
func (v *Volume) Close() {
	v.regs.cancel()
}
