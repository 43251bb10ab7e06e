package presenter

import (
	"log/slog"
	"sync"
	"time"
)

// Poster queues a callback for execution on the UI thread.
type Poster interface{ Post(fn func()) }

// Dispatcher collects callbacks posted from network goroutines until the UI
// loop drains them. The zero value is usable.
type Dispatcher struct {
	mu      sync.Mutex
	pending []func()
}

// Post queues fn. Safe to call from any goroutine.
func (d *Dispatcher) Post(fn func()) {
	if d == nil || fn == nil {
		return
	}
	d.mu.Lock()
	d.pending = append(d.pending, fn)
	d.mu.Unlock()
}

// Drain runs every queued callback in posting order on the calling goroutine
// and returns how many ran. Callbacks posted while draining run on the next Drain.
func (d *Dispatcher) Drain() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending reports the number of queued callbacks.
func (d *Dispatcher) Pending() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// async runs blocking work off the UI thread and posts the continuation back.
type async struct {
	post  Poster
	spawn func(func())
}

func newAsync(post Poster) async {
	return async{post: post, spawn: func(fn func()) { go fn() }}
}

// do runs work on a goroutine, then schedules then on the UI thread.
func (a async) do(work func(), then func()) {
	a.spawn(func() {
		work()
		if then != nil {
			a.post.Post(then)
		}
	})
}

// Loop drains UI callbacks and refreshes the status line on every tick.
//
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Dispatch *Dispatcher
	Status   *StatusPresenter
	Schedule func()
}

func NewLoop(dispatch *Dispatcher, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{Dispatch: dispatch, Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Dispatch != nil {
		l.Dispatch.Drain()
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

func discardIfNil(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
