package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/squiggle-cli/squiggle/constant"
	"github.com/squiggle-cli/squiggle/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// errUnavailable is mpv's answer for properties of media that is not loaded.
const errUnavailable = "property unavailable"

// MPV implements Player using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	listener   *EventListener
	mu         sync.Mutex // protects socket writes
}

// NewMPV creates a new MPV player instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Open starts playback of target. If mpv is already running,
// the file is loaded into the existing instance via IPC.
func (m *MPV) Open(target string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.running() {
		_, err := m.sendCommand([]any{"loadfile", safeTarget, "replace"})
		return err
	}

	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Squiggle, randomBytes))
	}

	// Only the socket and the target; the user's mpv.conf decides the rest.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--input-ipc-server=" + m.socketPath,
		"--force-window=no",
		"--idle=yes",
		safeTarget,
	}

	m.cmd = exec.Command("mpv", args...)
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) running() bool {
	if m.socketPath == "" {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
	}
	_, err := m.sendCommand([]any{"get_property", "pid"})
	return err == nil
}

// Status polls position, duration, volume and pause state.
// It returns ErrNotPlaying while mpv idles without media.
func (m *MPV) Status() (Status, error) {
	var status Status

	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		if strings.Contains(err.Error(), errUnavailable) {
			return status, ErrNotPlaying
		}
		return status, err
	}
	status.TimePos = pos

	// Streams may not know their duration yet.
	if dur, err := m.getFloatProperty("duration"); err == nil {
		status.Duration = dur
	}

	vol, err := m.getFloatProperty("volume")
	if err != nil {
		return status, err
	}
	status.Volume = int(math.Round(vol))

	data, err := m.sendCommand([]any{"get_property", "pause"})
	if err != nil {
		return status, err
	}
	status.Paused, _ = data.(bool)

	return status, nil
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]any{"seek", seconds, "absolute"})
	return err
}

// SetVolume sets mpv's volume property.
func (m *MPV) SetVolume(volume int) error {
	return m.Set("volume", volume)
}

// TogglePause cycles the pause property.
func (m *MPV) TogglePause() error {
	_, err := m.sendCommand([]any{"cycle", "pause"})
	return err
}

// Set sets a property.
func (m *MPV) Set(property string, value any) error {
	_, err := m.sendCommand([]any{"set_property", property, value})
	return err
}

// Observe subscribes to mpv's property-change events and calls callback
// with the updated snapshot each time one arrives.
func (m *MPV) Observe(callback func(Status)) (stop func(), err error) {
	if m.socketPath == "" {
		return nil, ErrNotPlaying
	}
	m.listener = NewEventListener(m.socketPath, callback)
	if err := m.listener.Start(); err != nil {
		return nil, err
	}
	return m.listener.Stop, nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", errors.New("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", errors.New("invalid control characters in target")
	}

	// Anything starting with a dash would be read as a flag.
	if strings.HasPrefix(t, "-") {
		return "", errors.New("target must not start with '-' (looks like a flag)")
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(t), nil
}
