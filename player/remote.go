package player

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/squiggle-cli/squiggle/log"
)

// Remote ops understood by a websocket playback host.
const (
	OpOpen   = "open"
	OpStatus = "status"
	OpSeek   = "seek"
	OpVolume = "volume"
	OpPause  = "pause"
)

// errNotPlaying is the error text a remote host sends for ErrNotPlaying.
const errNotPlaying = "not playing"

// Request is one command sent to a remote host as a JSON text frame.
type Request struct {
	Op     string  `json:"op"`
	Target string  `json:"target,omitempty"`
	Value  float64 `json:"value"`
}

// Reply is the remote host's answer to a Request.
type Reply struct {
	Error    string  `json:"error,omitempty"`
	TimePos  float64 `json:"time_pos"`
	Duration float64 `json:"duration"`
	Volume   int     `json:"volume"`
	Paused   bool    `json:"paused"`
}

// Status converts a reply to a snapshot.
func (r Reply) Status() Status {
	return Status{TimePos: r.TimePos, Duration: r.Duration, Volume: r.Volume, Paused: r.Paused}
}

// Remote drives a playback host over a websocket with request/reply JSON frames.
type Remote struct {
	url         string
	dialer      websocket.Dialer
	readTimeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn

	done chan struct{}
	once sync.Once
}

// NewRemote returns a host for wsURL. Nothing is dialed until the first request.
func NewRemote(wsURL string) *Remote {
	return &Remote{
		url:         wsURL,
		dialer:      websocket.Dialer{HandshakeTimeout: 2 * time.Second},
		readTimeout: 2 * time.Second,
		done:        make(chan struct{}),
	}
}

func (r *Remote) connect() error {
	if r.conn != nil {
		return nil
	}

	u, err := url.Parse(r.url)
	if err != nil {
		return fmt.Errorf("invalid websocket URL: %w", err)
	}

	conn, _, err := r.dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", u.Redacted(), err)
	}
	log.Infof("connected to remote player at %s", u.Redacted())
	r.conn = conn
	return nil
}

// call sends req and waits for its reply. A broken connection is dropped
// and redialed on the next call.
func (r *Remote) call(req Request) (Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reply Reply
	if err := r.connect(); err != nil {
		return reply, err
	}

	if err := r.conn.WriteJSON(req); err != nil {
		r.drop()
		return reply, fmt.Errorf("%s: write: %w", req.Op, err)
	}
	if err := r.conn.SetReadDeadline(time.Now().Add(r.readTimeout)); err != nil {
		r.drop()
		return reply, fmt.Errorf("%s: set deadline: %w", req.Op, err)
	}
	if err := r.conn.ReadJSON(&reply); err != nil {
		r.drop()
		return reply, fmt.Errorf("%s: read: %w", req.Op, err)
	}

	switch reply.Error {
	case "":
		return reply, nil
	case errNotPlaying:
		return reply, ErrNotPlaying
	default:
		return reply, fmt.Errorf("%s: remote error: %s", req.Op, reply.Error)
	}
}

func (r *Remote) drop() {
	log.Warnf("remote player connection to %s lost", r.url)
	_ = r.conn.Close()
	r.conn = nil
}

// Open asks the host to play target.
func (r *Remote) Open(target string) error {
	_, err := r.call(Request{Op: OpOpen, Target: target})
	return err
}

// Status asks the host for a snapshot.
func (r *Remote) Status() (Status, error) {
	reply, err := r.call(Request{Op: OpStatus})
	if err != nil {
		return Status{}, err
	}
	return reply.Status(), nil
}

// Seek asks the host to move to an absolute position in seconds.
func (r *Remote) Seek(seconds float64) error {
	_, err := r.call(Request{Op: OpSeek, Value: seconds})
	return err
}

// SetVolume asks the host to change its volume, 0-100.
func (r *Remote) SetVolume(volume int) error {
	_, err := r.call(Request{Op: OpVolume, Value: float64(volume)})
	return err
}

// TogglePause asks the host to pause or resume.
func (r *Remote) TogglePause() error {
	_, err := r.call(Request{Op: OpPause})
	return err
}

// Close says goodbye to the host and ends the session.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		err = r.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		if errors.Is(err, websocket.ErrCloseSent) {
			err = nil
		}
		_ = r.conn.Close()
		r.conn = nil
	}
	r.once.Do(func() { close(r.done) })
	return err
}

// Wait returns a channel that is closed by Close.
func (r *Remote) Wait() <-chan struct{} {
	return r.done
}
