package util

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "key", "keys"), ShouldEqual, "1 key")
		So(Quantify(2, "key", "keys"), ShouldEqual, "2 keys")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("music/track.mp3"), ShouldEqual, "track")
		So(FileStem("track"), ShouldEqual, "track")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(1.5, 0, 1), ShouldEqual, 1)
		So(Clamp(-0.5, 0, 1), ShouldEqual, 0)
		So(Clamp(0.25, 0, 1), ShouldEqual, 0.25)
		So(Clamp(120, 0, 100), ShouldEqual, 100)
	})
}

func TestFormatTime(t *testing.T) {
	Convey("FormatTime", t, func() {
		So(FormatTime(0), ShouldEqual, "0:00")
		So(FormatTime(65.9), ShouldEqual, "1:05")
		So(FormatTime(3725), ShouldEqual, "1:02:05")
		So(FormatTime(-3), ShouldEqual, "0:00")
		So(FormatTime(math.NaN()), ShouldEqual, "0:00")
	})
}
