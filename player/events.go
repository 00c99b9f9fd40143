package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"sync"

	"github.com/squiggle-cli/squiggle/log"
)

// observed are the properties mpv pushes to an EventListener.
var observed = []string{"time-pos", "duration", "volume", "pause"}

// EventListener keeps a Status current from mpv's observe_property notifications.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   func(Status)
	mu         sync.Mutex
	status     Status
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback func(Status)) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start opens a persistent connection, registers the observers on it and
// starts a dedicated read loop. Observers are bound to the connection that
// registered them.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	// Initial values arrive while registering; fold them in silently.
	seed := func(msg ipcMessage) {
		if msg.Event == "property-change" {
			el.apply(msg.Name, msg.Data)
		}
	}

	dec := json.NewDecoder(conn)
	for i, name := range observed {
		if _, err := roundTrip(conn, dec, []any{"observe_property", i + 1, name}, seed); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}
	// Observers outlive the registration deadline.
	_ = conn.SetReadDeadline(noDeadline)

	el.conn = conn
	el.listening = true
	go el.readLoop(dec)

	log.Infof("mpv event listener started on %s (observing: %v)", el.socketPath, observed)
	return nil
}

// Stop closes the connection, which ends the read loop.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}
	el.conn.Close()
	el.listening = false
}

// Status returns the last assembled snapshot.
func (el *EventListener) Status() Status {
	el.mu.Lock()
	defer el.mu.Unlock()
	return el.status
}

func (el *EventListener) readLoop(dec *json.Decoder) {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	for {
		var msg ipcMessage
		if err := dec.Decode(&msg); err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Warnf("event listener read error: %v", err)
			}
			return
		}
		el.process(msg)
	}
}

// process folds one message into the snapshot and reports it.
func (el *EventListener) process(msg ipcMessage) {
	if msg.Event != "property-change" {
		return
	}

	el.mu.Lock()
	changed := el.apply(msg.Name, msg.Data)
	status := el.status
	el.mu.Unlock()

	if changed && el.callback != nil {
		el.callback(status)
	}
}

func (el *EventListener) apply(name string, data any) bool {
	switch name {
	case "time-pos":
		// nil while nothing is loaded
		pos, _ := data.(float64)
		el.status.TimePos = pos
	case "duration":
		dur, _ := data.(float64)
		el.status.Duration = dur
	case "volume":
		vol, ok := data.(float64)
		if !ok {
			return false
		}
		el.status.Volume = int(math.Round(vol))
	case "pause":
		paused, ok := data.(bool)
		if !ok {
			return false
		}
		el.status.Paused = paused
	default:
		return false
	}
	return true
}
