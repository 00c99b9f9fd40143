package log

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/squiggle-cli/squiggle/filesystem"
	"github.com/squiggle-cli/squiggle/key"
	"github.com/squiggle-cli/squiggle/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		Convey("With hands out a discarding entry", func() {
			entry := Component("slider")
			So(entry.Logger.Out, ShouldNotEqual, logrus.StandardLogger().Out)
		})
	})

	Convey("Given logging is enabled", t, func() {
		t.Setenv(where.EnvConfigPath, "/squiggle")
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeTrue)
		So(logrus.GetLevel(), ShouldEqual, logrus.DebugLevel)

		files, err := filesystem.API().ReadDir(where.Logs())
		So(err, ShouldBeNil)
		So(files, ShouldHaveLength, 1)
	})
}
