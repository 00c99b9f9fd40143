package player

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// scripted is a Player whose position advances one second per poll.
type scripted struct {
	mu   sync.Mutex
	pos  float64
	err  error
	done chan struct{}
	push func(Status)
}

func newScripted() *scripted { return &scripted{done: make(chan struct{})} }

func (s *scripted) Open(string) error { return nil }
func (s *scripted) Status() (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos++
	return Status{TimePos: s.pos, Duration: 100}, s.err
}
func (s *scripted) Seek(float64) error    { return nil }
func (s *scripted) SetVolume(int) error   { return nil }
func (s *scripted) TogglePause() error    { return nil }
func (s *scripted) Close() error          { close(s.done); return nil }
func (s *scripted) Wait() <-chan struct{} { return s.done }

// pushing adds Observer to scripted.
type pushing struct {
	*scripted
	stopped bool
}

func (p *pushing) Observe(callback func(Status)) (func(), error) {
	p.push = callback
	return func() { p.stopped = true }, nil
}

func next(w *Watcher) Update {
	select {
	case u := <-w.Updates():
		return u
	case <-time.After(2 * time.Second):
		return Update{Err: errors.New("timed out")}
	}
}

func TestWatch(t *testing.T) {
	Convey("Given a watched player", t, func() {
		p := newScripted()
		w := Watch(p, 10*time.Millisecond)
		defer w.Stop()

		Convey("The first poll happens at once and later ones follow", func() {
			So(next(w).Status.TimePos, ShouldEqual, 1)
			So(next(w).Status.TimePos, ShouldEqual, 2)
		})

		Convey("Poll errors are delivered", func() {
			next(w)
			p.mu.Lock()
			p.err = ErrNotPlaying
			p.mu.Unlock()
			var u Update
			for i := 0; i < 3 && u.Err == nil; i++ {
				u = next(w)
			}
			So(errors.Is(u.Err, ErrNotPlaying), ShouldBeTrue)
		})

		Convey("Stop is idempotent and ends polling", func() {
			next(w)
			w.Stop()
			w.Stop()
			select {
			case <-w.Updates():
			default:
			}
			select {
			case u := <-w.Updates():
				So(u.Status.TimePos, ShouldBeLessThanOrEqualTo, 3)
			case <-time.After(50 * time.Millisecond):
			}
		})
	})

	Convey("Given a player that pushes changes", t, func() {
		p := &pushing{scripted: newScripted()}
		w := Watch(p, time.Hour)

		So(next(w).Status.TimePos, ShouldEqual, 1)
		go p.push(Status{TimePos: 42})
		So(next(w).Status.TimePos, ShouldEqual, 42)

		w.Stop()
		So(p.stopped, ShouldBeTrue)
	})

	Convey("A finished session stops the watcher", t, func() {
		p := newScripted()
		w := Watch(p, time.Hour)
		next(w)
		So(p.Close(), ShouldBeNil)
		select {
		case <-w.stop:
		case <-time.After(2 * time.Second):
		}
		_, open := <-w.stop
		So(open, ShouldBeFalse)
	})
}

func TestNew(t *testing.T) {
	Convey("Hosts are looked up by name", t, func() {
		for _, name := range Available {
			p, err := New(name, "ws://127.0.0.1:1/ws")
			So(err, ShouldBeNil)
			So(p, ShouldNotBeNil)
		}
		_, err := New("vlc", "")
		So(err, ShouldNotBeNil)
	})

	Convey("Progress needs a duration", t, func() {
		So(Status{TimePos: 5}.Progress(), ShouldEqual, 0)
		So(Status{TimePos: 5, Duration: 10}.Progress(), ShouldEqual, 0.5)
		So(Status{TimePos: 50, Duration: 10}.Progress(), ShouldEqual, 1)
	})
}
