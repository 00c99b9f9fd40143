package settings

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/squiggle-cli/squiggle/filesystem"
	"github.com/squiggle-cli/squiggle/wave"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestFile(t *testing.T) {
	Convey("Given a file store", t, func() {
		path := "/squiggle/settings-" + t.Name() + ".json"
		_ = filesystem.API().Remove(path)
		store := NewFile(path, "squiggly-slider")

		Convey("Loading before any save finds nothing", func() {
			_, ok := store.Load()
			So(ok, ShouldBeFalse)
		})

		Convey("A saved record round-trips", func() {
			want := Record{Wavelength: 20, Amplitude: 3, ActiveColor: "#ff0000"}
			So(store.Save(want), ShouldBeNil)

			got, ok := NewFile(path, "squiggly-slider").Load()
			So(ok, ShouldBeTrue)
			So(got, ShouldResemble, want)
		})

		Convey("Records under other keys are kept apart", func() {
			So(store.Save(Record{Amplitude: 3}), ShouldBeNil)
			_, ok := NewFile(path, "other").Load()
			So(ok, ShouldBeFalse)
		})

		Convey("Reset forgets the record", func() {
			So(store.Save(Record{Amplitude: 3}), ShouldBeNil)
			So(store.Reset(), ShouldBeNil)
			_, ok := store.Load()
			So(ok, ShouldBeFalse)
		})

		Convey("Malformed data is ignored and then overwritten", func() {
			So(filesystem.API().WriteFile(path, []byte("{not json"), 0644), ShouldBeNil)
			fresh := NewFile(path, "squiggly-slider")
			_, ok := fresh.Load()
			So(ok, ShouldBeFalse)

			So(fresh.Save(Record{Wavelength: 10}), ShouldBeNil)
			got, ok := fresh.Load()
			So(ok, ShouldBeTrue)
			So(got.Wavelength, ShouldEqual, 10)
		})
	})
}

func TestRecordOptions(t *testing.T) {
	Convey("Record options", t, func() {
		Convey("carry every usable field", func() {
			c := wave.Progress(Record{Wavelength: 30, Amplitude: 5, ActiveColor: "#112233"}.Options()...)
			So(c.Wavelength, ShouldEqual, 30)
			So(c.Amplitude, ShouldEqual, 5)
			So(c.Active.String(), ShouldEqual, "#112233")
		})

		Convey("skip empty and invalid fields", func() {
			opts := Record{Wavelength: -1, ActiveColor: "not-a-colour"}.Options()
			So(opts, ShouldBeEmpty)
			c := wave.Progress(opts...)
			So(c.Wavelength, ShouldEqual, 24)
			So(c.Active.String(), ShouldEqual, "#00ff88")
		})
	})
}

func TestMemory(t *testing.T) {
	Convey("Memory store counts saves", t, func() {
		m := &Memory{}
		_, ok := m.Load()
		So(ok, ShouldBeFalse)
		So(m.Save(Record{Amplitude: 1}), ShouldBeNil)
		r, ok := m.Load()
		So(ok, ShouldBeTrue)
		So(r.Amplitude, ShouldEqual, 1)
		So(m.Saves, ShouldEqual, 1)
	})
}

func TestSchema(t *testing.T) {
	Convey("The settings schema", t, func() {
		data, err := json.Marshal(Schema())
		So(err, ShouldBeNil)

		Convey("It names every persisted field", func() {
			So(string(data), ShouldContainSubstring, "wavelength")
			So(string(data), ShouldContainSubstring, "amplitude")
			So(string(data), ShouldContainSubstring, "activeColor")
		})

		Convey("It carries the field descriptions", func() {
			So(string(data), ShouldContainSubstring, "Peak amplitude of the progress squiggle")
		})
	})
}
