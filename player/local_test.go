package player

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/squiggle-cli/squiggle/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGain(t *testing.T) {
	Convey("Volume levels map onto a base-2 gain", t, func() {
		v, silent := gain(100)
		So(v, ShouldEqual, 0)
		So(silent, ShouldBeFalse)

		v, _ = gain(50)
		So(v, ShouldEqual, -1)

		v, _ = gain(25)
		So(math.Abs(v+2), ShouldBeLessThan, 1e-12)

		_, silent = gain(0)
		So(silent, ShouldBeTrue)
	})
}

func TestLocal(t *testing.T) {
	Convey("Given an idle local player", t, func() {
		l := NewLocal()

		Convey("Nothing is playing", func() {
			status, err := l.Status()
			So(errors.Is(err, ErrNotPlaying), ShouldBeTrue)
			So(status.Volume, ShouldEqual, 100)
			So(errors.Is(l.Seek(3), ErrNotPlaying), ShouldBeTrue)
			So(errors.Is(l.TogglePause(), ErrNotPlaying), ShouldBeTrue)
		})

		Convey("The volume is remembered before a file is opened", func() {
			So(l.SetVolume(140), ShouldBeNil)
			status, _ := l.Status()
			So(status.Volume, ShouldEqual, 100)
			So(l.SetVolume(30), ShouldBeNil)
			status, _ = l.Status()
			So(status.Volume, ShouldEqual, 30)
		})

		Convey("Unknown formats are rejected", func() {
			So(l.Open("song.flac"), ShouldNotBeNil)
		})

		Convey("Missing files are reported", func() {
			So(l.Open("/nowhere/song.wav"), ShouldNotBeNil)
		})

		Convey("Close ends the session once", func() {
			So(l.Close(), ShouldBeNil)
			So(l.Close(), ShouldBeNil)
			_, open := <-l.Wait()
			So(open, ShouldBeFalse)
		})
	})
}
