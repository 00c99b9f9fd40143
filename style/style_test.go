package style

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNextAccent(t *testing.T) {
	Convey("Given the accent ring", t, func() {
		Convey("It steps forward", func() {
			So(NextAccent(Accents[0]), ShouldEqual, Accents[1])
		})
		Convey("It wraps around", func() {
			So(NextAccent(Accents[len(Accents)-1]), ShouldEqual, Accents[0])
		})
		Convey("It restarts on unknown colours", func() {
			So(NextAccent("rgba(1, 2, 3, 0.5)"), ShouldEqual, Accents[0])
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate(20)("short"), ShouldEqual, "short")
		So(Truncate(5)("a rather long title"), ShouldEqual, "a ra…")
		So(Truncate(0)("anything"), ShouldEqual, "")
	})
}
