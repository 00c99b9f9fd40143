// Package player defines a unified abstraction layer for playback hosts.
// A host reports a sparse position and a volume; the sliders smooth the rest.
// The primary implementation targets 'mpv' via its JSON-IPC interface.
package player

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ErrNotPlaying is returned when a host is asked about media it has not loaded.
var ErrNotPlaying = errors.New("player: nothing is playing")

// Status is a single snapshot of a playback host.
type Status struct {
	// TimePos is the playback position in seconds.
	TimePos float64
	// Duration is the media length in seconds. Zero means unknown.
	Duration float64
	// Volume is 0-100.
	Volume int
	Paused bool
}

// Progress returns TimePos/Duration, or zero for unknown durations.
func (s Status) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return lo.Clamp(s.TimePos/s.Duration, 0, 1)
}

// Player encapsulates the required capabilities for a playback host.
type Player interface {
	// Open starts playback of target. A running host loads it in place.
	Open(target string) error

	// Status polls the host once.
	Status() (Status, error)

	// Seek moves playback to an absolute position in seconds.
	Seek(seconds float64) error

	// SetVolume sets the volume, 0-100.
	SetVolume(volume int) error

	// TogglePause inverts the current suspension state.
	TogglePause() error

	// Close terminates the host and releases its resources.
	Close() error

	// Wait returns a channel that is closed when the session terminates.
	Wait() <-chan struct{}
}

// Available lists the host names accepted by New.
var Available = []string{"mpv", "local", "remote"}

// New returns the host registered under name. remoteURL is only used by "remote".
func New(name, remoteURL string) (Player, error) {
	switch name {
	case "mpv":
		return NewMPV(), nil
	case "local":
		return NewLocal(), nil
	case "remote":
		return NewRemote(remoteURL), nil
	default:
		return nil, fmt.Errorf("unknown player %q, available: %v", name, Available)
	}
}
