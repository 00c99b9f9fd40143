package player

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeHost is a websocket playback host with a single piece of media.
type fakeHost struct {
	status  Reply
	target  string
	loaded  bool
	hangup  bool
	dropped int
}

func (h *fakeHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if h.hangup {
			h.hangup = false
			h.dropped++
			return
		}

		reply := h.status
		switch req.Op {
		case OpOpen:
			h.target, h.loaded = req.Target, true
			reply = h.status
		case OpStatus:
			if !h.loaded {
				reply = Reply{Error: errNotPlaying}
			}
		case OpSeek:
			h.status.TimePos = req.Value
			reply = h.status
		case OpVolume:
			h.status.Volume = int(req.Value)
			reply = h.status
		case OpPause:
			h.status.Paused = !h.status.Paused
			reply = h.status
		default:
			reply = Reply{Error: "unknown op " + req.Op}
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

func TestRemote(t *testing.T) {
	Convey("Given a remote host", t, func() {
		host := &fakeHost{status: Reply{TimePos: 10, Duration: 40, Volume: 60}}
		server := httptest.NewServer(host)
		defer server.Close()

		remote := NewRemote("ws" + strings.TrimPrefix(server.URL, "http"))
		defer remote.Close()

		Convey("Status before Open reports nothing playing", func() {
			_, err := remote.Status()
			So(errors.Is(err, ErrNotPlaying), ShouldBeTrue)
		})

		Convey("Open loads the target", func() {
			So(remote.Open("song.mp3"), ShouldBeNil)
			So(host.target, ShouldEqual, "song.mp3")

			status, err := remote.Status()
			So(err, ShouldBeNil)
			So(status, ShouldResemble, Status{TimePos: 10, Duration: 40, Volume: 60})

			Convey("Commands change the host", func() {
				So(remote.Seek(0), ShouldBeNil)
				So(remote.SetVolume(0), ShouldBeNil)
				So(remote.TogglePause(), ShouldBeNil)
				status, _ := remote.Status()
				So(status, ShouldResemble, Status{TimePos: 0, Duration: 40, Volume: 0, Paused: true})
			})

			Convey("A dropped connection fails once and then redials", func() {
				host.hangup = true
				_, err := remote.Status()
				So(err, ShouldNotBeNil)
				So(host.dropped, ShouldEqual, 1)

				status, err := remote.Status()
				So(err, ShouldBeNil)
				So(status.Duration, ShouldEqual, 40)
			})
		})

		Convey("Host errors are surfaced", func() {
			_, err := remote.call(Request{Op: "rewind"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unknown op rewind")
		})

		Convey("Close ends the session", func() {
			So(remote.Open("song.mp3"), ShouldBeNil)
			So(remote.Close(), ShouldBeNil)
			_, open := <-remote.Wait()
			So(open, ShouldBeFalse)
		})
	})

	Convey("A host that is not there fails to dial", t, func() {
		remote := NewRemote("ws://127.0.0.1:1/ws")
		_, err := remote.Status()
		So(err, ShouldNotBeNil)
	})
}
