package canvas

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/squiggle-cli/squiggle/wave"
)

var white = wave.MustPaint("#ffffff")

func TestCanvas(t *testing.T) {
	Convey("Given a 10x8 dot canvas", t, func() {
		c := New(10, 8)

		Convey("It spans 5x2 cells", func() {
			cols, rows := c.Cells()
			So(cols, ShouldEqual, 5)
			So(rows, ShouldEqual, 2)
		})

		Convey("It starts blank", func() {
			So(c.Plain(), ShouldEqual, "     \n     ")
		})

		Convey("A tiny disc lights exactly one dot", func() {
			c.FillCircle(0.2, 0.2, 0.1, white)
			So(c.Lit(0, 0), ShouldBeTrue)
			So(strings.Split(c.Plain(), "\n")[0], ShouldEqual, "⠁    ")

			c.Clear()
			c.FillCircle(1.5, 3.5, 0.1, white)
			So(strings.Split(c.Plain(), "\n")[0], ShouldEqual, "⢀    ")
		})

		Convey("A thin horizontal stroke fills one dot row", func() {
			c.StrokePolyline([]wave.Point{{X: 0, Y: 1.5}, {X: 9.9, Y: 1.5}}, 1, white)
			So(c.Plain(), ShouldEqual, "⠒⠒⠒⠒⠒\n     ")
		})

		Convey("Translucent paint composites", func() {
			half := white.WithAlpha(0.5)
			c.FillCircle(4.5, 4.5, 0.1, half)
			So(c.dots[4*c.dotCols()+4].a, ShouldAlmostEqual, 0.5, 1e-9)
			c.FillCircle(4.5, 4.5, 0.1, half)
			So(c.dots[4*c.dotCols()+4].a, ShouldAlmostEqual, 0.75, 1e-9)
		})

		Convey("Overlapping stamps within one stroke composite once", func() {
			half := white.WithAlpha(0.5)
			c.StrokePolyline([]wave.Point{{X: 0, Y: 0.5}, {X: 3, Y: 0.5}, {X: 0, Y: 0.5}}, 1, half)
			So(c.dots[0].a, ShouldAlmostEqual, 0.5, 1e-9)
		})

		Convey("Fully transparent paint draws nothing", func() {
			c.FillRoundRect(0, 0, 10, 8, 0, white.WithAlpha(0))
			So(c.Plain(), ShouldEqual, "     \n     ")
		})

		Convey("A filled rectangle lights every dot inside it", func() {
			c.FillRoundRect(0, 0, 10, 8, 0, white)
			So(c.Plain(), ShouldEqual, "⣿⣿⣿⣿⣿\n⣿⣿⣿⣿⣿")
		})

		Convey("Rounded corners stay dark", func() {
			c.FillRoundRect(0, 0, 10, 8, 4, white)
			So(c.Lit(0, 0), ShouldBeFalse)
			So(c.Lit(5, 4), ShouldBeTrue)
		})

		Convey("A ring leaves its centre dark", func() {
			c.StrokeCircle(5, 4, 3, 1, white)
			So(c.Lit(4, 3), ShouldBeFalse)
			So(c.Lit(7, 3), ShouldBeTrue)
		})

		Convey("Text is centred on its cell row", func() {
			c.Text(5, 5, "ab", white)
			So(strings.Split(c.Plain(), "\n")[1], ShouldEqual, " ab  ")
		})

		Convey("Text outside the canvas is dropped", func() {
			c.Text(5, 40, "ab", white)
			So(c.Plain(), ShouldEqual, "     \n     ")
		})

		Convey("Resize reallocates and clears", func() {
			c.FillRoundRect(0, 0, 10, 8, 0, white)
			c.Resize(3, 5)
			w, h := c.Size()
			So(w, ShouldEqual, 3)
			So(h, ShouldEqual, 5)
			So(c.Plain(), ShouldEqual, "  \n  ")
		})

		Convey("String keeps the same glyphs as Plain", func() {
			c.StrokePolyline([]wave.Point{{X: 0, Y: 1.5}, {X: 9.9, Y: 1.5}}, 1, white)
			So(c.String(), ShouldContainSubstring, "⠒")
		})
	})
}

func TestCanvasIsSurface(t *testing.T) {
	Convey("Canvas satisfies wave.Surface and takes a full frame", t, func() {
		var s wave.Surface = New(80, 8)
		r := wave.LinearRenderer{Config: wave.Progress(wave.WithStrokeWidth(1))}
		r.Draw(s, wave.LinearFrame{Progress: 0.5, Amplitude: 2})
		So(s.(*Canvas).Plain(), ShouldNotEqual, New(80, 8).Plain())
	})
}
