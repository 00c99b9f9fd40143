package ui

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notice the view is untouched", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notice is appended to the last line", func() {
			cmd := m.Update(Notify("Colour saved")())
			So(cmd, ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "Colour saved")
			view := m.View("a\nb")
			So(strings.HasPrefix(view, "a\nb  "), ShouldBeTrue)
			So(view, ShouldContainSubstring, "Colour saved")
		})

		Convey("A stale timer does not clear a newer notice", func() {
			m.Update(NotificationMsg{Text: "first"})
			stale := ClearNotificationMsg{generation: m.generation}
			m.Update(NotificationMsg{Text: "second"})
			m.Update(stale)
			So(m.Current(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{generation: m.generation})
			So(m.Current(), ShouldEqual, "")
		})
	})
}
