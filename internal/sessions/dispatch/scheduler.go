package dispatch

import "time"

// Scheduler schedules a function to run once on the loop after a delay.
// The returned cancel function prevents a pending run from firing; it is a
// hard cancel, safe to call more than once.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules via time.AfterFunc, posting the callback onto the
// loop so it executes serially with all other session events.
type TimerScheduler struct {
	loop *Loop
}

// NewTimerScheduler creates a scheduler bound to the given loop.
func NewTimerScheduler(loop *Loop) *TimerScheduler {
	return &TimerScheduler{loop: loop}
}

// Schedule runs fn on the loop after d. Cancelling after the timer has fired
// is a no-op.
func (s *TimerScheduler) Schedule(d time.Duration, fn func()) (cancel func()) {
	timer := time.AfterFunc(d, func() {
		s.loop.Post(fn)
	})
	return func() { timer.Stop() }
}

var _ Scheduler = (*TimerScheduler)(nil)
