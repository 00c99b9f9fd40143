package slider

import (
	"time"

	"github.com/squiggle-cli/squiggle/frame"
	"github.com/squiggle-cli/squiggle/wave"
)

// Mirror is a display-only compact bar. It has no estimator and no pointer handling.
type Mirror struct {
	cfg       wave.Config
	renderer  wave.LinearRenderer
	surface   wave.Surface
	container Container

	progress float64
	phase    wave.Phase

	regs registrations
}

// NewMirror builds a compact bar. Only the stored active colour is applied.
func NewMirror(surface wave.Surface, container Container, env Env, opts ...wave.Option) (*Mirror, error) {
	if err := validate("mirror", surface, container); err != nil {
		return nil, err
	}
	if record, ok := env.load(); ok {
		if opt, ok := record.ColorOption(); ok {
			opts = append(opts, opt)
		}
	}
	cfg := wave.Mini(opts...)

	m := &Mirror{
		cfg:       cfg,
		renderer:  wave.LinearRenderer{Config: cfg, Compact: true},
		surface:   surface,
		container: container,
	}
	fit(surface, container)
	m.regs.attach(env, m.Tick, nil, func(float64, float64) { fit(m.surface, m.container) })
	return m, nil
}

// Config returns the effective drawing configuration.
func (m *Mirror) Config() wave.Config { return m.cfg }

// SetProgress shows value directly, clamped to [0, 1]. NaN keeps the current value.
func (m *Mirror) SetProgress(value float64) {
	if v, ok := unit(value); ok {
		m.progress = v
	}
}

// Progress returns the shown value.
func (m *Mirror) Progress() float64 { return m.progress }

// SetActiveColor recolours the bar without persisting anything.
func (m *Mirror) SetActiveColor(p wave.Paint) {
	m.cfg.Active = p
	m.renderer.Config = m.cfg
}

// Tick advances the wave phase and redraws.
func (m *Mirror) Tick(elapsed time.Duration) {
	if Animates(elapsed) {
		m.phase = m.phase.Advance(elapsed, m.cfg.AnimationDuration)
	}
	m.Draw()
}

// Draw renders the current state without advancing it.
func (m *Mirror) Draw() {
	m.renderer.Draw(m.surface, wave.LinearFrame{
		Progress:  m.progress,
		Amplitude: m.cfg.Amplitude,
		Phase:     m.phase,
	})
}

// Close drops every registration. It is safe to call twice.
func (m *Mirror) Close() {
	m.regs.cancel()
}

// Source is a value with a known maximum, e.g. a position and a duration.
type Source interface {
	Value() float64
	Max() float64
}

// Setter receives normalized values.
type Setter interface {
	SetProgress(float64)
}

// DefaultSyncInterval is how often a Sync polls when no interval is given.
const DefaultSyncInterval = 200 * time.Millisecond

// Sync forwards Source.Value()/Source.Max() to a Setter at a fixed interval,
// measured in frame time.
type Sync struct {
	source   Source
	target   Setter
	interval time.Duration
	acc      time.Duration
	sub      *frame.Subscription
}

// NewSync starts polling on frames. A nil loop leaves polling to explicit Poll calls.
func NewSync(frames *frame.Loop, source Source, target Setter, interval time.Duration) *Sync {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	s := &Sync{source: source, target: target, interval: interval}
	if frames != nil {
		s.sub = frames.Schedule(s.tick)
	}
	return s
}

func (s *Sync) tick(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	s.acc += elapsed
	if s.acc < s.interval {
		return
	}
	s.acc %= s.interval
	s.Poll()
}

// Poll forwards the current ratio now. Sources without a positive maximum are skipped.
func (s *Sync) Poll() {
	max := s.source.Max()
	if max <= 0 {
		return
	}
	s.target.SetProgress(s.source.Value() / max)
}

// Close stops polling.
func (s *Sync) Close() {
	s.sub.Cancel()
}
