// Package dispatch provides the single-threaded run loop that serializes all
// session state. Every session mutation executes as an event on the loop
// goroutine; remote calls run on helper goroutines and re-enter the loop via
// Post with their result. Between those suspension points state updates are
// atomic, so sessions need no locking.
package dispatch

import (
	"context"
	"sync"
)

// Loop is a serial event executor.
type Loop struct {
	events chan func()
	quit   chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewLoop creates a loop. Run or Start must be called before posting events.
func NewLoop() *Loop {
	return &Loop{
		events: make(chan func(), 128),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start runs the loop on its own goroutine.
func (l *Loop) Start() {
	go l.Run(context.Background())
}

// Run processes events until the context is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.quit:
			return
		case fn := <-l.events:
			fn()
		}
	}
}

// Stop terminates the loop. Events still queued are dropped; this is the
// deterministic teardown point for all sessions.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.quit) })
	<-l.done
}

// Post enqueues fn for execution on the loop goroutine. Posting to a stopped
// loop is a no-op.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.quit:
	case l.events <- fn:
	}
}

// Do posts fn and waits for it to complete. If the loop stops first, Do
// returns without fn having run.
func (l *Loop) Do(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Go runs call on its own goroutine and posts the continuation back onto the
// loop. This is the only sanctioned way for sessions to issue remote calls:
// call runs off-loop, done runs on-loop.
func Go[T any](l *Loop, call func() (T, error), done func(T, error)) {
	go func() {
		v, err := call()
		l.Post(func() { done(v, err) })
	}()
}
