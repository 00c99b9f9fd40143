package where

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/squiggle-cli/squiggle/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestConfig(t *testing.T) {
	Convey("Given a custom config path", t, func() {
		t.Setenv(EnvConfigPath, "/tmp/squiggle-test")

		Convey("Config honours the override", func() {
			So(Config(), ShouldEqual, "/tmp/squiggle-test")
		})

		Convey("The directory is created", func() {
			exists, err := filesystem.API().DirExists(Config())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})

		Convey("Settings and logs live beneath it", func() {
			So(Settings(), ShouldEqual, filepath.Join("/tmp/squiggle-test", "settings.json"))
			So(Logs(), ShouldEqual, filepath.Join("/tmp/squiggle-test", "logs"))
		})
	})
}
