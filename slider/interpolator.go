package slider

import (
	"math"
	"time"

	"github.com/samber/lo"
)

const (
	// MaxFrame is the longest frame that still animates; longer gaps follow a suspended host.
	MaxFrame = 100 * time.Millisecond

	driftCeiling = 0.05
	driftBleed   = 0.05
	easeFactor   = 0.1
	snapDistance = 1e-4
)

// Animates reports whether a frame of the given length should advance animation state.
func Animates(elapsed time.Duration) bool {
	return elapsed > 0 && elapsed < MaxFrame
}

// Visual is what the renderer reads.
type Visual struct {
	Displayed float64
	Target    float64
}

// Interpolator advances the displayed value between samples.
type Interpolator struct {
	Visual
}

// Tick moves Displayed one frame forward. With a known rate it extrapolates
// and bleeds off overshoot beyond the anchor; otherwise it eases toward Target.
func (i *Interpolator) Tick(elapsed time.Duration, rate, anchor float64, dragging bool) {
	if dragging {
		return
	}

	if rate > 0 {
		i.Displayed += rate * milliseconds(elapsed)
		if drift := i.Displayed - anchor; drift > driftCeiling {
			i.Displayed -= drift * driftBleed
		}
	} else {
		gap := i.Target - i.Displayed
		if math.Abs(gap) > snapDistance {
			i.Displayed += gap * easeFactor
		} else {
			i.Displayed = i.Target
		}
	}

	i.Displayed = lo.Clamp(i.Displayed, 0, 1)
}
