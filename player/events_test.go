package player

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeEvent(t *testing.T) {
	Convey("DecodeEvent", t, func() {
		Convey("Position changes carry the reported seconds", func() {
			event, ok := DecodeEvent([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":12.345}`))
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, PositionChanged)
			So(event.Position, ShouldEqual, 12.345)
		})

		Convey("An unavailable position is not a position change", func() {
			event, ok := DecodeEvent([]byte(`{"event":"property-change","id":1,"name":"time-pos","data":null}`))
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, Other)
		})

		Convey("Other property changes keep their value", func() {
			event, ok := DecodeEvent([]byte(`{"event":"property-change","id":2,"name":"pause","data":true}`))
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, Other)
			So(event.Name, ShouldEqual, "pause")
			So(event.Value, ShouldEqual, true)
		})

		Convey("Lifecycle events are tagged", func() {
			for raw, kind := range map[string]EventKind{
				`{"event":"file-loaded"}`:              FileLoaded,
				`{"event":"playback-restart"}`:         Seek,
				`{"event":"shutdown"}`:                 Shutdown,
				`{"event":"end-file","reason":"quit"}`: Shutdown,
				`{"event":"idle"}`:                     Other,
			} {
				event, ok := DecodeEvent([]byte(raw))
				So(ok, ShouldBeTrue)
				So(event.Kind, ShouldEqual, kind)
			}
		})

		Convey("Command replies and garbage are not events", func() {
			for _, raw := range []string{`{"request_id":3,"error":"success"}`, `not json`, ``, `   `} {
				_, ok := DecodeEvent([]byte(raw))
				So(ok, ShouldBeFalse)
			}
		})
	})
}

func next(events <-chan Event) (Event, bool) {
	select {
	case event, ok := <-events:
		return event, ok
	case <-time.After(2 * time.Second):
		return Event{Name: "timeout"}, false
	}
}

func TestEventListener(t *testing.T) {
	Convey("Given a listener attached to mpv", t, func() {
		fake := newFakeMPV(t)
		Reset(fake.close)

		listener := NewEventListener(fake.path, 50*time.Millisecond)
		So(listener.Start(), ShouldBeNil)
		Reset(listener.Stop)

		So(fake.waitFor(len(observed)), ShouldBeTrue)

		Convey("It observes the position and pause properties", func() {
			So(fake.received()[0], ShouldResemble, []any{"observe_property", 1.0, "time-pos"})
			So(fake.received()[1], ShouldResemble, []any{"observe_property", 2.0, "pause"})
		})

		Convey("Events arrive in order and survive idle timeouts", func() {
			time.Sleep(120 * time.Millisecond) // longer than the read timeout
			fake.push(`{"event":"file-loaded"}`)
			fake.push(`{"event":"property-change","id":1,"name":"time-pos","data":4.5}`)

			first, ok := next(listener.Events())
			So(ok, ShouldBeTrue)
			So(first.Kind, ShouldEqual, FileLoaded)

			second, ok := next(listener.Events())
			So(ok, ShouldBeTrue)
			So(second.Kind, ShouldEqual, PositionChanged)
			So(second.Position, ShouldEqual, 4.5)
		})

		Convey("A dropped connection ends the stream with Shutdown", func() {
			fake.dropConnections()

			event, ok := next(listener.Events())
			So(ok, ShouldBeTrue)
			So(event.Kind, ShouldEqual, Shutdown)

			_, ok = next(listener.Events())
			So(ok, ShouldBeFalse)
		})
	})
}
