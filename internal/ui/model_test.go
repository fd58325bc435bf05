package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the content is unchanged", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("A notification is shown and schedules its clear", func() {
			cmd := m.Update(Notify("paused at cue 2")())
			So(cmd, ShouldNotBeNil)
			So(m.Text(), ShouldEqual, "paused at cue 2")
			So(m.View("a\nb"), ShouldContainSubstring, "paused at cue 2")
			So(m.View("a\nb"), ShouldStartWith, "a\nb")
		})

		Convey("Only the latest notification's clear removes it", func() {
			m.Update(NotificationMsg{Text: "first"})
			m.Update(NotificationMsg{Text: "second"})

			m.Update(ClearNotificationMsg{generation: 1})
			So(m.Text(), ShouldEqual, "second")

			m.Update(ClearNotificationMsg{generation: 2})
			So(m.Text(), ShouldEqual, "")
		})
	})
}
