package player

import (
	"sync"
	"time"

	"github.com/squiggle-cli/squiggle/log"
)

// Observer is implemented by hosts that push changes as they happen.
type Observer interface {
	Observe(callback func(Status)) (stop func(), err error)
}

// Update is a snapshot delivered by a Watcher. Err is set when the poll failed.
type Update struct {
	Status Status
	Err    error
}

// Watcher polls a host in a background goroutine. Hosts that implement
// Observer also push updates between polls.
type Watcher struct {
	updates   chan Update
	stop      chan struct{}
	once      sync.Once
	unobserve func()
}

// Watch polls p immediately and then every interval, until Stop or p.Wait().
func Watch(p Player, interval time.Duration) *Watcher {
	w := &Watcher{
		updates: make(chan Update, 1),
		stop:    make(chan struct{}),
	}

	if o, ok := p.(Observer); ok {
		unobserve, err := o.Observe(func(s Status) { w.send(Update{Status: s}) })
		if err != nil {
			log.Warnf("falling back to polling: %v", err)
		} else {
			w.unobserve = unobserve
		}
	}

	go w.poll(p, interval)
	return w
}

// Updates delivers snapshots in order. It is never closed.
func (w *Watcher) Updates() <-chan Update {
	return w.updates
}

// Stop ends polling and any push subscription. It is safe to call twice.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.stop)
		if w.unobserve != nil {
			w.unobserve()
		}
	})
}

func (w *Watcher) poll(p Player, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := p.Status()
		if !w.send(Update{Status: status, Err: err}) {
			return
		}

		select {
		case <-w.stop:
			return
		case <-p.Wait():
			w.Stop()
			return
		case <-ticker.C:
		}
	}
}

func (w *Watcher) send(u Update) bool {
	select {
	case w.updates <- u:
		return true
	case <-w.stop:
		return false
	}
}
