// Package input routes pointer and resize events to on-screen targets.
//
// Coordinates are in surface dots. A press is hit-tested against each
// target's bounds; motion and release go to every target so a drag keeps
// tracking after the pointer leaves the bar, and targets that are not
// dragging ignore them.
package input

import (
	"sync"

	"github.com/google/uuid"
)

// Rect is an axis-aligned layout box.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the box, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Action is the phase of a pointer gesture.
type Action int

const (
	Press Action = iota
	Motion
	Release
)

// Source tells mouse and touch gestures apart.
type Source int

const (
	Mouse Source = iota
	Touch
)

// Event is a single pointer sample.
type Event struct {
	X, Y   float64
	Action Action
	Source Source
}

// Target receives pointer gestures.
type Target interface {
	Bounds() Rect
	PointerDown(Event)
	// PointerMove reports whether the target is dragging.
	PointerMove(Event) bool
	PointerUp(Event)
	Hover(bool)
}

// Registration undoes an AddTarget or OnResize call.
type Registration struct {
	id     uuid.UUID
	window *Window
	once   sync.Once
}

// Cancel removes the registration. It is safe to call more than once.
func (r *Registration) Cancel() {
	if r == nil || r.window == nil {
		return
	}
	r.once.Do(func() { r.window.remove(r.id) })
}

type targetEntry struct {
	id      uuid.UUID
	target  Target
	hovered bool
}

type resizeEntry struct {
	id uuid.UUID
	fn func(width, height float64)
}

// Window is the shared event source for every slider on screen.
type Window struct {
	mu            sync.Mutex
	targets       []*targetEntry
	resize        []resizeEntry
	width, height float64
}

// NewWindow returns a window of the given size in dots.
func NewWindow(width, height float64) *Window {
	return &Window{width: width, height: height}
}

// Size returns the current window size in dots.
func (w *Window) Size() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

// AddTarget starts routing pointer events to t.
func (w *Window) AddTarget(t Target) *Registration {
	id := uuid.New()
	w.mu.Lock()
	w.targets = append(w.targets, &targetEntry{id: id, target: t})
	w.mu.Unlock()
	return &Registration{id: id, window: w}
}

// OnResize registers fn to run after every Resize.
func (w *Window) OnResize(fn func(width, height float64)) *Registration {
	id := uuid.New()
	w.mu.Lock()
	w.resize = append(w.resize, resizeEntry{id: id, fn: fn})
	w.mu.Unlock()
	return &Registration{id: id, window: w}
}

// Targets reports the number of registered targets.
func (w *Window) Targets() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.targets)
}

func (w *Window) remove(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, t := range w.targets {
		if t.id == id {
			w.targets = append(w.targets[:i], w.targets[i+1:]...)
			return
		}
	}
	for i, r := range w.resize {
		if r.id == id {
			w.resize = append(w.resize[:i], w.resize[i+1:]...)
			return
		}
	}
}

// Resize records the new size and notifies listeners in registration order.
func (w *Window) Resize(width, height float64) {
	w.mu.Lock()
	w.width, w.height = width, height
	listeners := make([]resizeEntry, len(w.resize))
	copy(listeners, w.resize)
	w.mu.Unlock()

	for _, l := range listeners {
		l.fn(width, height)
	}
}

// setHovered records the hover state of e and reports whether it changed.
func (w *Window) setHovered(e *targetEntry, inside bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e.hovered == inside {
		return false
	}
	e.hovered = inside
	return true
}

// Dispatch routes ev and reports whether the host should suppress its default
// handling, which is the case for touch gestures that hit or drag a target.
// It may be called from several goroutines. Targets are called without the
// window lock held, so they may cancel their own registration.
func (w *Window) Dispatch(ev Event) (preventDefault bool) {
	w.mu.Lock()
	targets := make([]*targetEntry, len(w.targets))
	copy(targets, w.targets)
	w.mu.Unlock()

	for _, e := range targets {
		switch ev.Action {
		case Press:
			if e.target.Bounds().Contains(ev.X, ev.Y) {
				e.target.PointerDown(ev)
				if ev.Source == Touch {
					preventDefault = true
				}
			}
		case Motion:
			if e.target.PointerMove(ev) && ev.Source == Touch {
				preventDefault = true
			}
			if ev.Source == Mouse {
				inside := e.target.Bounds().Contains(ev.X, ev.Y)
				if w.setHovered(e, inside) {
					e.target.Hover(inside)
				}
			}
		case Release:
			e.target.PointerUp(ev)
		}
	}
	return preventDefault
}
