// Package clock abstracts wall-clock waiting so the rest of the module
// doesn't call time.Sleep directly, the same separation the emulator
// uses for every other host-facing device.
package clock

import "time"

// Clock can report the current instant and block for a duration.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the production Clock, backed by the standard library.
type RealClock struct{}

func (RealClock) Now() time.Time     { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }

// FrameLimiter paces RunFrame calls to a fixed rate, sleeping off
// whatever time a frame finished early and letting a late frame run
// straight into the next one without trying to catch up.
type FrameLimiter struct {
	clock    Clock
	period   time.Duration
	lastTick time.Time
}

// NewFrameLimiter builds a limiter for the given frame rate.
func NewFrameLimiter(clock Clock, framesPerSecond int) *FrameLimiter {
	return &FrameLimiter{
		clock:  clock,
		period: time.Second / time.Duration(framesPerSecond),
	}
}

// Wait blocks until period has elapsed since the previous Wait call's
// target time, or returns immediately if that time has already passed.
func (f *FrameLimiter) Wait() {
	now := f.clock.Now()
	if f.lastTick.IsZero() {
		f.lastTick = now
		return
	}
	next := f.lastTick.Add(f.period)
	if now.Before(next) {
		f.clock.Sleep(next.Sub(now))
		f.lastTick = next
	} else {
		f.lastTick = now
	}
}
