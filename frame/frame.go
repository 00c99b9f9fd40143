// Package frame drives per-frame animation callbacks from an explicit clock.
//
// A Loop has no goroutine of its own: the host calls Step with the current
// time (or Advance with an elapsed duration) once per display frame, and every
// subscribed callback runs in registration order with the elapsed time since
// the previous frame.
package frame

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Callback receives the time elapsed since the previous frame.
type Callback func(elapsed time.Duration)

type entry struct {
	id uuid.UUID
	cb Callback
}

// Loop is a cooperative frame scheduler.
type Loop struct {
	mu      sync.Mutex
	entries []entry
	last    time.Time
}

// New returns an empty loop.
func New() *Loop {
	return &Loop{}
}

// Subscription cancels a scheduled callback.
type Subscription struct {
	ID   uuid.UUID
	loop *Loop
	once sync.Once
}

// Cancel removes the callback. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil || s.loop == nil {
		return
	}
	s.once.Do(func() { s.loop.remove(s.ID) })
}

// Schedule registers cb to run on every frame until cancelled.
func (l *Loop) Schedule(cb Callback) *Subscription {
	id := uuid.New()
	l.mu.Lock()
	l.entries = append(l.entries, entry{id: id, cb: cb})
	l.mu.Unlock()
	return &Subscription{ID: id, loop: l}
}

func (l *Loop) remove(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// Len reports the number of live subscriptions.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Step runs one frame at wall time now. The first step reports zero elapsed time.
func (l *Loop) Step(now time.Time) {
	l.mu.Lock()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	l.Advance(elapsed)
}

// Advance runs one frame with an explicit elapsed duration.
func (l *Loop) Advance(elapsed time.Duration) {
	l.mu.Lock()
	snapshot := make([]entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, e := range snapshot {
		if !l.alive(e.id) {
			continue
		}
		e.cb(elapsed)
	}
}

func (l *Loop) alive(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}
