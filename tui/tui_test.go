package tui

import (
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/squiggle-cli/squiggle/config"
	"github.com/squiggle-cli/squiggle/filesystem"
	"github.com/squiggle-cli/squiggle/player"
	"github.com/squiggle-cli/squiggle/settings"
)

func init() {
	filesystem.SetMemMapFs()
	if err := config.Setup(); err != nil {
		panic(err)
	}
}

// fakePlayer records every command it receives.
type fakePlayer struct {
	mu      sync.Mutex
	seeks   []float64
	volumes []int
	pauses  int
	done    chan struct{}
}

func newFakePlayer() *fakePlayer { return &fakePlayer{done: make(chan struct{})} }

func (f *fakePlayer) Open(string) error { return nil }
func (f *fakePlayer) Status() (player.Status, error) {
	return player.Status{TimePos: 30, Duration: 120, Volume: 40}, nil
}
func (f *fakePlayer) Seek(s float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, s)
	return nil
}
func (f *fakePlayer) SetVolume(v int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, v)
	return nil
}
func (f *fakePlayer) TogglePause() error    { f.pauses++; return nil }
func (f *fakePlayer) Close() error          { return nil }
func (f *fakePlayer) Wait() <-chan struct{} { return f.done }

// run executes cmd and any batch it expands to, returning the messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func press(b *statefulBubble, k tea.KeyMsg) tea.Cmd {
	_, cmd := b.Update(k)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBubble(t *testing.T) {
	Convey("Given a playing bubble on a 100x30 terminal", t, func() {
		p := newFakePlayer()
		store := &settings.Memory{}
		b, err := newBubble(&Options{Target: "music/song.mp3", Player: p, Store: store})
		So(err, ShouldBeNil)
		defer b.close()

		b.resize(100, 30)
		b.newState(playState)
		b.Update(statusMsg{Status: player.Status{TimePos: 30, Duration: 120, Volume: 40}})

		Convey("The layout follows the terminal", func() {
			So(b.progressBox.rect.X, ShouldEqual, 4)
			So(b.progressBox.rect.Y, ShouldEqual, 12)
			So(b.progressBox.rect.W, ShouldEqual, 192)
			w, h := b.progressC.Size()
			So(w, ShouldEqual, 192)
			So(h, ShouldEqual, 8)
			cols, rows := b.volumeC.Cells()
			So(cols, ShouldEqual, volumeCols)
			So(rows, ShouldEqual, volumeRows)
		})

		Convey("Snapshots reach the sliders", func() {
			So(b.progress.Target(), ShouldEqual, 0.25)
			So(b.volume.Volume(), ShouldEqual, 40)
			So(b.timeLabel(), ShouldEqual, "0:30 / 2:00")
		})

		Convey("A click on the bar seeks the host on release", func() {
			// cell (50, 3) is dot (101, 14), inside the bar
			b.Update(tea.MouseMsg{X: 50, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
			So(b.preview.IsPresent(), ShouldBeTrue)
			So(p.seeks, ShouldBeEmpty)

			_, cmd := b.Update(tea.MouseMsg{X: 50, Y: 3, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
			run(cmd)
			So(p.seeks, ShouldHaveLength, 1)
			So(p.seeks[0], ShouldAlmostEqual, 97.0/192*120, 1e-9)
			So(b.preview.IsAbsent(), ShouldBeTrue)
		})

		Convey("Keys drive the host", func() {
			run(press(b, tea.KeyMsg{Type: tea.KeyUp}))
			So(b.volume.Volume(), ShouldEqual, 45)
			So(p.volumes, ShouldResemble, []int{45})

			run(press(b, tea.KeyMsg{Type: tea.KeyRight}))
			So(p.seeks, ShouldResemble, []float64{35})

			run(press(b, tea.KeyMsg{Type: tea.KeySpace}))
			So(p.pauses, ShouldEqual, 1)
		})

		Convey("Mute sends zero and unmute restores", func() {
			run(press(b, runes("m")))
			run(press(b, runes("m")))
			So(p.volumes, ShouldResemble, []int{0, 40})
		})

		Convey("Cycling the colour persists it and recolours every slider", func() {
			press(b, runes("c"))
			record, ok := store.Load()
			So(ok, ShouldBeTrue)
			So(record.ActiveColor, ShouldEqual, "#89b4fa")
			So(b.mirror.Config().Active.String(), ShouldEqual, "#89b4fa")
		})

		Convey("Animation can be toggled", func() {
			press(b, runes("a"))
			So(b.animate, ShouldBeFalse)
		})

		Convey("Frames advance the sliders", func() {
			now := time.Now()
			b.Update(frameMsg(now))
			b.Update(frameMsg(now.Add(16 * time.Millisecond)))
			So(b.progress.Displayed(), ShouldBeGreaterThan, 0)
			So(b.View(), ShouldContainSubstring, "Vol: 40%")
		})

		Convey("An ended session quits", func() {
			_, cmd := b.Update(exitMsg{})
			So(cmd(), ShouldResemble, tea.Quit())
		})

		Convey("A failed open shows the error", func() {
			b.Update(errFake)
			So(b.state, ShouldEqual, errorState)
			So(b.View(), ShouldContainSubstring, "Critical Failure")
		})

		Convey("Failed commands are reported without stopping playback", func() {
			b.Update(commandErrMsg{op: "seek", err: player.ErrNotPlaying})
			So(b.state, ShouldEqual, playState)
		})
	})
}

var errFake = errors.New("no such file")
