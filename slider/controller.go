package slider

import (
	"github.com/charmbracelet/harmonica"
	"github.com/samber/lo"
)

// State is the drag state of a slider.
type State int

const (
	Idle State = iota
	Dragging
)

// Amplitude eases the wave height toward a target, flattening it during a drag.
type Amplitude struct {
	Current float64
	Target  float64
}

// Ease closes 10% of the gap.
func (a *Amplitude) Ease() {
	a.Current += (a.Target - a.Current) * easeFactor
}

// Interaction is the pointer-facing state of a slider.
type Interaction struct {
	State     State
	Hovering  bool
	Amplitude Amplitude
}

// Controller owns the interaction state and the glow that follows it.
type Controller struct {
	Interaction
	rest float64

	spring   harmonica.Spring
	glow     float64
	velocity float64
}

// NewController returns an idle controller whose wave rests at amplitude.
func NewController(amplitude float64, fps int) *Controller {
	if fps <= 0 {
		fps = 60
	}
	return &Controller{
		Interaction: Interaction{Amplitude: Amplitude{Current: amplitude, Target: amplitude}},
		rest:        amplitude,
		spring:      harmonica.NewSpring(harmonica.FPS(fps), 8, 0.9),
	}
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.State == Dragging
}

// Begin enters Dragging and flattens the wave.
func (c *Controller) Begin() {
	c.State = Dragging
	c.Amplitude.Target = 0
}

// End leaves Dragging and restores the wave. It reports false when no drag was active.
func (c *Controller) End() bool {
	if c.State != Dragging {
		return false
	}
	c.State = Idle
	c.Amplitude.Target = c.rest
	return true
}

// Hover sets the orthogonal hover flag.
func (c *Controller) Hover(h bool) {
	c.Hovering = h
}

// Tick eases the amplitude and moves the glow spring one frame.
func (c *Controller) Tick() {
	c.Amplitude.Ease()

	target := 0.0
	if c.Hovering || c.Dragging() {
		target = 1
	}
	c.glow, c.velocity = c.spring.Update(c.glow, c.velocity, target)
}

// Glow returns the halo intensity in [0, 1].
func (c *Controller) Glow() float64 {
	g := lo.Clamp(c.glow, 0, 1)
	if g < 0.01 {
		return 0
	}
	return g
}
