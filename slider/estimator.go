package slider

import (
	"math"
	"time"

	"github.com/samber/mo"
)

// Estimator tuning. These values are empirical and kept as found.
const (
	NoiseFloor    = 1e-4
	JumpThreshold = 0.1
	DriftLimit    = 0.1
	SettleWindow  = 200 * time.Millisecond
	StallWindow   = 2000 * time.Millisecond
	PriorWeight   = 0.6
)

// VerdictKind classifies an ingested sample.
type VerdictKind int

const (
	// Seeded is the first sample; it only establishes the anchor.
	Seeded VerdictKind = iota
	// Noise is a sample within NoiseFloor of the previous one.
	Noise
	// Stalled is a noise sample arriving after StallWindow without change; the rate drops to zero.
	Stalled
	// Step is a forward move that updated the rate.
	Step
	// Jump is a discontinuity such as a seek or a track change.
	Jump
	// Moved is a real change too soon or too backward to estimate from.
	Moved
)

func (k VerdictKind) String() string {
	switch k {
	case Seeded:
		return "seeded"
	case Noise:
		return "noise"
	case Stalled:
		return "stalled"
	case Step:
		return "step"
	case Jump:
		return "jump"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of one Ingest call.
type Verdict struct {
	Kind VerdictKind
	// Snap asks the owner to set the displayed value to the sample.
	Snap bool
}

// EstimatorState is the anchor and rate derived from host samples.
type EstimatorState struct {
	AnchorValue       float64
	AnchorTime        time.Time
	Rate              float64 // progress per millisecond, never negative
	LastReceivedValue float64
	LastChangeTime    time.Time
}

// Estimator infers playback speed from sparse absolute position samples.
// The zero value is ready to use.
type Estimator struct {
	state mo.Option[EstimatorState]
}

// State returns the current state and whether the estimator has been seeded.
func (e *Estimator) State() (EstimatorState, bool) {
	return e.state.Get()
}

// Rate returns the estimated speed in progress per millisecond.
func (e *Estimator) Rate() float64 {
	return e.state.OrEmpty().Rate
}

// Anchor returns the last confirmed sample value.
func (e *Estimator) Anchor() float64 {
	return e.state.OrEmpty().AnchorValue
}

// Ingest folds a sample taken at now into the estimate. displayed is the
// value currently on screen, used to decide whether drift needs a resync.
// A NaN sample is reported as noise and changes nothing.
func (e *Estimator) Ingest(value float64, now time.Time, displayed float64) Verdict {
	value, ok := unit(value)
	if !ok {
		return Verdict{Kind: Noise}
	}

	st, ok := e.state.Get()
	if !ok {
		e.state = mo.Some(EstimatorState{
			AnchorValue:       value,
			AnchorTime:        now,
			LastReceivedValue: value,
			LastChangeTime:    now,
		})
		return Verdict{Kind: Seeded}
	}

	diff := value - st.LastReceivedValue
	elapsed := now.Sub(st.LastChangeTime)

	if math.Abs(diff) <= NoiseFloor {
		if elapsed > StallWindow {
			st.Rate = 0
			e.state = mo.Some(st)
			return Verdict{Kind: Stalled}
		}
		return Verdict{Kind: Noise}
	}

	var verdict Verdict
	switch {
	case elapsed > SettleWindow && diff > 0 && diff < JumpThreshold:
		instant := diff / milliseconds(elapsed)
		if st.Rate == 0 {
			st.Rate = instant
		} else {
			st.Rate = st.Rate*PriorWeight + instant*(1-PriorWeight)
		}
		verdict = Verdict{Kind: Step, Snap: math.Abs(displayed-value) > DriftLimit}
	case math.Abs(diff) > JumpThreshold:
		st.Rate = 0
		verdict = Verdict{Kind: Jump, Snap: true}
	default:
		verdict = Verdict{Kind: Moved}
	}

	st.AnchorValue, st.AnchorTime = value, now
	st.LastReceivedValue, st.LastChangeTime = value, now
	e.state = mo.Some(st)
	return verdict
}

// Reset re-anchors at value and forgets the rate.
func (e *Estimator) Reset(value float64, now time.Time) {
	e.state = mo.Some(EstimatorState{
		AnchorValue:       value,
		AnchorTime:        now,
		LastReceivedValue: value,
		LastChangeTime:    now,
	})
}

// Halt zeroes the rate but keeps the anchor.
func (e *Estimator) Halt() {
	if st, ok := e.state.Get(); ok {
		st.Rate = 0
		e.state = mo.Some(st)
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
