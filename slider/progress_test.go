package slider

import (
	"errors"
	"math"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/squiggle-cli/squiggle/canvas"
	"github.com/squiggle-cli/squiggle/frame"
	"github.com/squiggle-cli/squiggle/input"
	"github.com/squiggle-cli/squiggle/settings"
	"github.com/squiggle-cli/squiggle/wave"
)

type box struct {
	rect input.Rect
}

func (b *box) Bounds() input.Rect { return b.rect }

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type rig struct {
	frames *frame.Loop
	window *input.Window
	store  *settings.Memory
	clock  *clock
	env    Env
}

func newRig() *rig {
	r := &rig{
		frames: frame.New(),
		window: input.NewWindow(200, 40),
		store:  &settings.Memory{},
		clock:  &clock{t: epoch},
	}
	r.env = Env{Frames: r.frames, Window: r.window, Store: r.store, Now: r.clock.now}
	return r
}

func TestNewProgress(t *testing.T) {
	Convey("Construction", t, func() {
		r := newRig()

		Convey("fails without a surface", func() {
			p, err := NewProgress(nil, &box{}, r.env)
			So(p, ShouldBeNil)
			So(errors.Is(err, ErrMissingSurface), ShouldBeTrue)
		})

		Convey("fails without a container", func() {
			p, err := NewProgress(canvas.New(10, 10), nil, r.env)
			So(p, ShouldBeNil)
			So(errors.Is(err, ErrMissingContainer), ShouldBeTrue)
		})

		Convey("sizes the surface to the container", func() {
			surface := canvas.New(1, 1)
			_, err := NewProgress(surface, &box{rect: input.Rect{W: 120, H: 16}}, r.env)
			So(err, ShouldBeNil)
			w, h := surface.Size()
			So(w, ShouldEqual, 120)
			So(h, ShouldEqual, 16)
		})

		Convey("applies stored settings over options", func() {
			So(r.store.Save(settings.Record{Wavelength: 40, Amplitude: 5, ActiveColor: "#123456"}), ShouldBeNil)
			p, err := NewProgress(canvas.New(10, 10), &box{}, r.env, wave.WithWavelength(20))
			So(err, ShouldBeNil)
			So(p.Config().Wavelength, ShouldEqual, 40)
			So(p.Config().Amplitude, ShouldEqual, 5)
			So(p.Config().Active.String(), ShouldEqual, "#123456")
		})

		Convey("ignores a stored colour that does not parse", func() {
			So(r.store.Save(settings.Record{ActiveColor: "chartreuse-ish"}), ShouldBeNil)
			p, err := NewProgress(canvas.New(10, 10), &box{}, r.env)
			So(err, ShouldBeNil)
			So(p.Config().Active.String(), ShouldEqual, "#00ff88")
		})

		Convey("registers with the frame loop and window, and Close undoes it", func() {
			p, _ := NewProgress(canvas.New(10, 10), &box{}, r.env)
			So(r.frames.Len(), ShouldEqual, 1)
			So(r.window.Targets(), ShouldEqual, 1)
			p.Close()
			p.Close()
			So(r.frames.Len(), ShouldEqual, 0)
			So(r.window.Targets(), ShouldEqual, 0)
		})
	})
}

func TestProgress(t *testing.T) {
	Convey("Given a default progress bar", t, func() {
		r := newRig()
		container := &box{rect: input.Rect{X: 10, Y: 0, W: 100, H: 16}}
		surface := canvas.New(100, 16)
		p, err := NewProgress(surface, container, r.env)
		So(err, ShouldBeNil)

		tick := func(ms int) {
			r.clock.advance(time.Duration(ms) * time.Millisecond)
			r.frames.Advance(time.Duration(ms) * time.Millisecond)
		}

		Convey("One 16ms frame after the first sample eases to 0.025", func() {
			p.SetProgress(0.25)
			tick(16)
			So(p.Rate(), ShouldEqual, 0)
			So(p.Displayed(), ShouldAlmostEqual, 0.025, 1e-12)
		})

		Convey("Displayed stays in [0, 1] for any sample", func() {
			for _, v := range []float64{-3, 0.5, 42, -0.0001, 1.0001, math.NaN(), math.Inf(1), math.Inf(-1)} {
				p.SetProgress(v)
				for i := 0; i < 5; i++ {
					tick(16)
					So(p.Displayed(), ShouldBeBetweenOrEqual, 0, 1)
				}
			}
			p.SetProgress(42)
			So(p.Target(), ShouldEqual, 1)
		})

		Convey("A NaN sample is dropped", func() {
			p.SetProgress(0.25)
			p.SetProgress(math.NaN())
			tick(16)
			So(p.Target(), ShouldEqual, 0.25)
			So(p.Displayed(), ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("A discontinuity snaps at once and leaves no rate", func() {
			p.SetProgress(0.1)
			r.clock.advance(time.Second)
			p.SetProgress(0.11)
			So(p.Rate(), ShouldBeGreaterThan, 0)

			r.clock.advance(time.Second)
			p.SetProgress(0.61)
			So(p.Displayed(), ShouldEqual, 0.61)
			tick(16)
			So(p.Rate(), ShouldEqual, 0)
			So(p.Displayed(), ShouldEqual, 0.61)
		})

		Convey("Between samples the bar moves at the estimated rate", func() {
			p.SetProgress(0.5)
			r.clock.advance(time.Second)
			p.SetProgress(0.51)
			before := p.Displayed()
			tick(16)
			So(p.Displayed()-before, ShouldAlmostEqual, p.Rate()*16, 1e-12)
		})

		Convey("A paused host stops extrapolation", func() {
			p.SetProgress(0.5)
			r.clock.advance(time.Second)
			p.SetProgress(0.51)
			p.SetPlaying(false)
			So(p.Rate(), ShouldEqual, 0)

			r.clock.advance(time.Second)
			p.SetProgress(0.52)
			So(p.Rate(), ShouldEqual, 0)
		})

		Convey("Frames outside (0, 100ms) redraw without animating", func() {
			p.SetProgress(0.25)
			tick(250)
			So(p.Displayed(), ShouldEqual, 0)
			So(surface.Plain(), ShouldNotEqual, canvas.New(100, 16).Plain())
		})

		Convey("SetAnimate(false) freezes the bar", func() {
			p.SetProgress(0.25)
			p.SetAnimate(false)
			tick(16)
			So(p.Displayed(), ShouldEqual, 0)
		})

		Convey("When dragged", func() {
			var seeks []float64
			var started, ended int
			var final float64
			p.OnSeek = func(v float64) { seeks = append(seeks, v) }
			p.OnSeekStart = func() { started++ }
			p.OnSeekEnd = func(v float64) { ended++; final = v }

			p.SetProgress(0.2)
			r.window.Dispatch(input.Event{X: 60, Y: 8, Action: input.Press})

			Convey("it jumps to the pointer and reports the seek", func() {
				So(p.Dragging(), ShouldBeTrue)
				So(started, ShouldEqual, 1)
				So(p.Displayed(), ShouldEqual, 0.5)
				So(seeks, ShouldResemble, []float64{0.5})
				So(p.Amplitude().Target, ShouldEqual, 0)
			})

			Convey("host samples cannot move it", func() {
				p.SetProgress(0.9)
				tick(16)
				So(p.Displayed(), ShouldEqual, 0.5)
			})

			Convey("moves follow the pointer and clamp at the ends", func() {
				r.window.Dispatch(input.Event{X: 85, Y: 30, Action: input.Motion})
				r.window.Dispatch(input.Event{X: 500, Y: 30, Action: input.Motion})
				So(seeks, ShouldResemble, []float64{0.5, 0.75, 1})
			})

			Convey("release ends the drag once with the final value", func() {
				r.window.Dispatch(input.Event{X: 35, Y: 8, Action: input.Motion})
				r.window.Dispatch(input.Event{X: 35, Y: 8, Action: input.Release})
				r.window.Dispatch(input.Event{X: 35, Y: 8, Action: input.Release})
				So(ended, ShouldEqual, 1)
				So(final, ShouldEqual, 0.25)
				So(p.Dragging(), ShouldBeFalse)
				So(p.Amplitude().Target, ShouldEqual, p.Config().Amplitude)
			})

			Convey("the estimator restarts from the drag position", func() {
				r.window.Dispatch(input.Event{X: 60, Y: 8, Action: input.Release})
				r.clock.advance(time.Second)
				p.SetProgress(0.51)
				So(p.Rate(), ShouldAlmostEqual, 0.01/1000, 1e-12)
			})
		})

		Convey("Moves and releases without a drag are ignored", func() {
			ended := 0
			p.OnSeekEnd = func(float64) { ended++ }
			So(p.PointerMove(input.Event{X: 50}), ShouldBeFalse)
			p.PointerUp(input.Event{})
			So(ended, ShouldEqual, 0)
		})

		Convey("Touch drags ask the host to suppress scrolling", func() {
			So(r.window.Dispatch(input.Event{X: 60, Y: 8, Action: input.Press, Source: input.Touch}), ShouldBeTrue)
			So(r.window.Dispatch(input.Event{X: 70, Y: 8, Action: input.Motion, Source: input.Touch}), ShouldBeTrue)
		})

		Convey("SetColor recolours and persists", func() {
			So(p.SetColor("#ff00ff"), ShouldBeNil)
			So(p.Config().Active.String(), ShouldEqual, "#ff00ff")
			saved, ok := r.store.Load()
			So(ok, ShouldBeTrue)
			So(saved, ShouldResemble, settings.Record{
				Wavelength:  p.Config().Wavelength,
				Amplitude:   p.Config().Amplitude,
				ActiveColor: "#ff00ff",
			})
		})

		Convey("SetColor rejects colours it cannot parse", func() {
			err := p.SetColor("sparkly")
			So(errors.Is(err, wave.ErrInvalidColor), ShouldBeTrue)
			So(r.store.Saves, ShouldEqual, 0)
		})

		Convey("Resizing the window refits the surface", func() {
			container.rect.W, container.rect.H = 60, 8
			r.window.Resize(60, 20)
			w, h := surface.Size()
			So(w, ShouldEqual, 60)
			So(h, ShouldEqual, 8)
		})
	})
}
