package slider

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/squiggle-cli/squiggle/input"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/settings"
	"github.com/squiggle-cli/squiggle/wave"
)

// Progress is the interactive playback bar.
type Progress struct {
	cfg       wave.Config
	renderer  wave.LinearRenderer
	surface   wave.Surface
	container Container
	env       Env
	log       *logrus.Entry

	estimator Estimator
	interp    Interpolator
	control   *Controller
	phase     wave.Phase
	animate   bool
	playing   bool

	// OnSeek fires on pointer-down and on every move of a drag.
	OnSeek func(progress float64)
	// OnSeekStart fires when a drag begins.
	OnSeekStart func()
	// OnSeekEnd fires once when a drag ends, with the final value.
	OnSeekEnd func(progress float64)

	regs registrations
}

// NewProgress builds a progress bar drawing onto surface inside container.
// Stored settings override opts.
func NewProgress(surface wave.Surface, container Container, env Env, opts ...wave.Option) (*Progress, error) {
	if err := validate("progress", surface, container); err != nil {
		return nil, err
	}

	if record, ok := env.load(); ok {
		opts = append(opts, record.Options()...)
	}
	cfg := wave.Progress(opts...)

	p := &Progress{
		cfg:       cfg,
		renderer:  wave.LinearRenderer{Config: cfg},
		surface:   surface,
		container: container,
		env:       env,
		log:       log.Component("progress"),
		control:   NewController(cfg.Amplitude, env.FPS),
		animate:   true,
		playing:   true,
	}

	fit(surface, container)
	p.regs.attach(env, p.Tick, p, func(float64, float64) { fit(p.surface, p.container) })
	return p, nil
}

// Config returns the effective drawing configuration.
func (p *Progress) Config() wave.Config {
	return p.cfg
}

// SetProgress feeds a host position sample in [0, 1]. Out-of-range values
// are clamped and NaN is dropped. Samples are ignored while the user drags.
func (p *Progress) SetProgress(value float64) {
	if p.control.Dragging() {
		return
	}
	value, ok := unit(value)
	if !ok {
		return
	}

	verdict := p.estimator.Ingest(value, p.env.now(), p.interp.Displayed)
	if verdict.Snap {
		p.interp.Displayed = value
	}
	p.interp.Target = value

	if !p.playing {
		p.estimator.Halt()
	}

	switch verdict.Kind {
	case Jump, Stalled:
		p.log.WithFields(logrus.Fields{"verdict": verdict.Kind, "value": value}).Debug("rate reset")
	}
}

// SetPlaying tells the bar whether the host is playing. A paused host has no rate.
func (p *Progress) SetPlaying(playing bool) {
	p.playing = playing
	if !playing {
		p.estimator.Halt()
	}
}

// SetAnimate freezes or resumes the wave phase and the interpolation.
func (p *Progress) SetAnimate(animate bool) {
	p.animate = animate
}

// SetColor changes the active colour and persists the look.
func (p *Progress) SetColor(color string) error {
	paint, err := wave.ParsePaint(color)
	if err != nil {
		return err
	}
	p.cfg.Active = paint
	p.renderer.Config = p.cfg

	if p.env.Store == nil {
		return nil
	}
	record := settings.Record{Wavelength: p.cfg.Wavelength, Amplitude: p.cfg.Amplitude, ActiveColor: color}
	if err := p.env.Store.Save(record); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Displayed is the value currently drawn.
func (p *Progress) Displayed() float64 { return p.interp.Displayed }

// Target is the last accepted sample or drag position.
func (p *Progress) Target() float64 { return p.interp.Target }

// Rate is the estimated speed in progress per millisecond.
func (p *Progress) Rate() float64 { return p.estimator.Rate() }

// Dragging reports whether the user is scrubbing.
func (p *Progress) Dragging() bool { return p.control.Dragging() }

// Amplitude returns the eased wave height.
func (p *Progress) Amplitude() Amplitude { return p.control.Amplitude }

// Value and Max let a mirror follow the bar.
func (p *Progress) Value() float64 { return p.interp.Displayed }
func (p *Progress) Max() float64   { return 1 }

// Tick advances one frame and redraws. Frames outside (0, MaxFrame) only redraw.
func (p *Progress) Tick(elapsed time.Duration) {
	if p.animate && Animates(elapsed) {
		p.phase = p.phase.Advance(elapsed, p.cfg.AnimationDuration)
		p.interp.Tick(elapsed, p.estimator.Rate(), p.estimator.Anchor(), p.control.Dragging())
		p.control.Tick()
	}
	p.Draw()
}

// Draw renders the current state without advancing it.
func (p *Progress) Draw() {
	p.renderer.Draw(p.surface, wave.LinearFrame{
		Progress:  p.interp.Displayed,
		Amplitude: p.control.Amplitude.Current,
		Phase:     p.phase,
		Glow:      p.control.Glow(),
	})
}

// Bounds returns the container box the bar is hit-tested against.
func (p *Progress) Bounds() input.Rect { return p.container.Bounds() }

// PointerDown starts a drag and jumps to the pressed position.
func (p *Progress) PointerDown(ev input.Event) {
	p.control.Begin()
	if p.OnSeekStart != nil {
		p.OnSeekStart()
	}
	p.seekTo(ev)
}

// PointerMove follows the pointer while dragging and reports whether it did.
func (p *Progress) PointerMove(ev input.Event) bool {
	if !p.control.Dragging() {
		return false
	}
	p.seekTo(ev)
	return true
}

// PointerUp ends a drag and reports the final position through OnSeekEnd.
func (p *Progress) PointerUp(input.Event) {
	if !p.control.End() {
		return
	}
	if p.OnSeekEnd != nil {
		p.OnSeekEnd(p.interp.Target)
	}
}

// Hover turns the glow on or off.
func (p *Progress) Hover(h bool) { p.control.Hover(h) }

func (p *Progress) seekTo(ev input.Event) {
	b := p.container.Bounds()
	var value float64
	if b.W > 0 {
		value, _ = unit((ev.X - b.X) / b.W)
	}
	p.interp.Displayed, p.interp.Target = value, value
	p.estimator.Reset(value, p.env.now())
	if p.OnSeek != nil {
		p.OnSeek(value)
	}
}

// Close drops every frame, pointer and resize registration. It is safe to call twice.
func (p *Progress) Close() {
	p.regs.cancel()
}
