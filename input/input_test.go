package input

import (
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeTarget struct {
	bounds   Rect
	dragging bool
	downs    int
	moves    int
	ups      int
	hovers   []bool
}

func (f *fakeTarget) Bounds() Rect { return f.bounds }
func (f *fakeTarget) PointerDown(Event) {
	f.downs++
	f.dragging = true
}
func (f *fakeTarget) PointerMove(Event) bool {
	if !f.dragging {
		return false
	}
	f.moves++
	return true
}
func (f *fakeTarget) PointerUp(Event) {
	if !f.dragging {
		return
	}
	f.ups++
	f.dragging = false
}
func (f *fakeTarget) Hover(h bool) { f.hovers = append(f.hovers, h) }

func TestRect(t *testing.T) {
	Convey("Contains includes the edges", t, func() {
		r := Rect{X: 10, Y: 0, W: 20, H: 4}
		So(r.Contains(10, 0), ShouldBeTrue)
		So(r.Contains(30, 4), ShouldBeTrue)
		So(r.Contains(31, 2), ShouldBeFalse)
		So(r.Contains(15, -1), ShouldBeFalse)
	})
}

func TestDispatch(t *testing.T) {
	Convey("Given a window with two targets", t, func() {
		w := NewWindow(100, 40)
		bar := &fakeTarget{bounds: Rect{X: 0, Y: 0, W: 100, H: 8}}
		knob := &fakeTarget{bounds: Rect{X: 0, Y: 20, W: 40, H: 20}}
		barReg := w.AddTarget(bar)
		w.AddTarget(knob)

		Convey("A press only reaches the target under the pointer", func() {
			w.Dispatch(Event{X: 50, Y: 4, Action: Press})
			So(bar.downs, ShouldEqual, 1)
			So(knob.downs, ShouldEqual, 0)
		})

		Convey("A drag keeps tracking outside the bounds", func() {
			w.Dispatch(Event{X: 50, Y: 4, Action: Press})
			w.Dispatch(Event{X: 500, Y: 300, Action: Motion})
			w.Dispatch(Event{X: 500, Y: 300, Action: Release})
			So(bar.moves, ShouldEqual, 1)
			So(bar.ups, ShouldEqual, 1)
			So(knob.moves, ShouldEqual, 0)
			So(knob.ups, ShouldEqual, 0)
		})

		Convey("Touch gestures on a target prevent the default", func() {
			So(w.Dispatch(Event{X: 50, Y: 4, Action: Press, Source: Touch}), ShouldBeTrue)
			So(w.Dispatch(Event{X: 60, Y: 4, Action: Motion, Source: Touch}), ShouldBeTrue)
			So(w.Dispatch(Event{X: 60, Y: 4, Action: Release, Source: Touch}), ShouldBeFalse)
			So(w.Dispatch(Event{X: 60, Y: 4, Action: Motion, Source: Touch}), ShouldBeFalse)
		})

		Convey("Mouse gestures never prevent the default", func() {
			So(w.Dispatch(Event{X: 50, Y: 4, Action: Press}), ShouldBeFalse)
		})

		Convey("Mouse motion toggles hover on enter and leave", func() {
			w.Dispatch(Event{X: 50, Y: 4, Action: Motion})
			w.Dispatch(Event{X: 51, Y: 4, Action: Motion})
			w.Dispatch(Event{X: 50, Y: 14, Action: Motion})
			So(bar.hovers, ShouldResemble, []bool{true, false})
		})

		Convey("A cancelled target stops receiving events", func() {
			barReg.Cancel()
			barReg.Cancel()
			So(w.Targets(), ShouldEqual, 1)
			w.Dispatch(Event{X: 10, Y: 4, Action: Press})
			So(bar.downs, ShouldEqual, 0)
		})
	})
}

func TestResize(t *testing.T) {
	Convey("Resize notifies listeners until cancelled", t, func() {
		w := NewWindow(10, 10)
		var got [][2]float64
		reg := w.OnResize(func(width, height float64) { got = append(got, [2]float64{width, height}) })

		w.Resize(80, 24)
		reg.Cancel()
		w.Resize(90, 30)

		So(got, ShouldResemble, [][2]float64{{80, 24}})
		width, height := w.Size()
		So(width, ShouldEqual, 90)
		So(height, ShouldEqual, 30)
	})
}

type countingTarget struct {
	bounds Rect

	mu           sync.Mutex
	enter, leave int
}

func (c *countingTarget) Bounds() Rect           { return c.bounds }
func (c *countingTarget) PointerDown(Event)      {}
func (c *countingTarget) PointerMove(Event) bool { return false }
func (c *countingTarget) PointerUp(Event)        {}
func (c *countingTarget) Hover(h bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h {
		c.enter++
	} else {
		c.leave++
	}
}

func TestConcurrentHover(t *testing.T) {
	Convey("Hover changes from several goroutines stay paired", t, func() {
		w := NewWindow(100, 40)
		target := &countingTarget{bounds: Rect{W: 100, H: 8}}
		w.AddTarget(target)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					w.Dispatch(Event{X: 50, Y: 4, Action: Motion})
					w.Dispatch(Event{X: 50, Y: 30, Action: Motion})
				}
			}()
		}
		wg.Wait()
		w.Dispatch(Event{X: 50, Y: 30, Action: Motion})

		So(target.enter, ShouldBeGreaterThan, 0)
		So(target.enter, ShouldEqual, target.leave)
	})
}
