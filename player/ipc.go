package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// ipcMessage is anything mpv writes back: a reply or an unsolicited event.
type ipcMessage struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
	ID        int64  `json:"id"`
	Name      string `json:"name"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
)

var requestIDs atomic.Int64

// noDeadline clears a read deadline.
var noDeadline time.Time

// sendCommand sends a JSON-IPC command to mpv, retrying transient failures.
func (m *MPV) sendCommand(command []any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// mpv answered; retrying will not change its mind.
		var mpvErr *mpvError
		if errors.As(err, &mpvErr) {
			break
		}
	}

	return nil, fmt.Errorf("ipc command failed after retries: %w", lastErr)
}

// mpvError is an error reported by mpv itself rather than by the transport.
type mpvError struct {
	msg string
}

func (e *mpvError) Error() string { return "mpv error: " + e.msg }

// doSendCommand performs a single IPC command attempt on a fresh connection.
func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	return roundTrip(conn, json.NewDecoder(conn), command, nil)
}

// roundTrip writes command and reads until its reply. Events read on the
// way are handed to onEvent when it is set.
func roundTrip(conn net.Conn, dec *json.Decoder, command []any, onEvent func(ipcMessage)) (any, error) {
	id := requestIDs.Add(1)
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON.
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	for {
		var msg ipcMessage
		if err := dec.Decode(&msg); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if msg.Event != "" {
			if onEvent != nil {
				onEvent(msg)
			}
			continue
		}
		if msg.RequestID != id {
			continue
		}
		if msg.Error != "" && msg.Error != "success" {
			return nil, &mpvError{msg: msg.Error}
		}
		return msg.Data, nil
	}
}
