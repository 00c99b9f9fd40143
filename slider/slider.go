// Package slider keeps the squiggly sliders in sync with a sparse playback host.
//
// A Progress bar estimates playback speed from irregular position samples and
// extrapolates between them, a Volume arc commits its value on release, and a
// Mirror bar repeats another value on a fixed polling schedule. All state is
// mutated from frame callbacks and from the host's own goroutine; callers must
// not use a slider concurrently.
package slider

import (
	"errors"
	"math"
	"time"

	"github.com/samber/lo"
	"github.com/squiggle-cli/squiggle/frame"
	"github.com/squiggle-cli/squiggle/input"
	"github.com/squiggle-cli/squiggle/log"
	"github.com/squiggle-cli/squiggle/settings"
	"github.com/squiggle-cli/squiggle/wave"
)

var (
	// ErrMissingSurface is returned when a slider is built without a surface.
	ErrMissingSurface = errors.New("slider: missing surface")
	// ErrMissingContainer is returned when a slider is built without a container.
	ErrMissingContainer = errors.New("slider: missing container")
)

// unit clamps v to [0, 1]. NaN is rejected.
func unit(v float64) (float64, bool) {
	if math.IsNaN(v) {
		return 0, false
	}
	return lo.Clamp(v, 0, 1), true
}

// Container supplies the layout box a slider occupies, in surface units.
type Container interface {
	Bounds() input.Rect
}

// Env is what a slider subscribes to. Nil fields are skipped.
type Env struct {
	Frames *frame.Loop
	Window *input.Window
	Store  settings.Store
	// Now defaults to time.Now.
	Now func() time.Time
	// FPS paces the glow spring; defaults to 60.
	FPS int
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) load() (settings.Record, bool) {
	if e.Store == nil {
		return settings.Record{}, false
	}
	return e.Store.Load()
}

func validate(kind string, surface wave.Surface, container Container) error {
	if surface == nil {
		log.Errorf("%s slider: %v", kind, ErrMissingSurface)
		return ErrMissingSurface
	}
	if container == nil {
		log.Errorf("%s slider: %v", kind, ErrMissingContainer)
		return ErrMissingContainer
	}
	return nil
}

// registrations tracks everything a slider subscribed to so Close can undo it.
type registrations struct {
	tick   *frame.Subscription
	target *input.Registration
	resize *input.Registration
}

func (r *registrations) attach(env Env, tick frame.Callback, target input.Target, resize func(float64, float64)) {
	if env.Frames != nil && tick != nil {
		r.tick = env.Frames.Schedule(tick)
	}
	if env.Window != nil {
		if target != nil {
			r.target = env.Window.AddTarget(target)
		}
		r.resize = env.Window.OnResize(resize)
	}
}

func (r *registrations) cancel() {
	r.tick.Cancel()
	r.target.Cancel()
	r.resize.Cancel()
}

// fit sizes surface to the container's box.
func fit(surface wave.Surface, container Container) {
	b := container.Bounds()
	surface.Resize(b.W, b.H)
}
