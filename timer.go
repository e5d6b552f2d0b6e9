package adorn

import "time"

// Timer is a frame-driven repeating timer. It only advances when Update is
// called, so OnTick always runs on the update thread.
//
// While running, OnTick fires every Interval of accumulated time. A zero
// Interval fires on the next Update.
type Timer struct {
	Interval time.Duration
	OnTick   func()

	elapsed time.Duration
	running bool
}

// NewTimer returns a stopped timer.
func NewTimer(interval time.Duration, onTick func()) *Timer {
	return &Timer{Interval: interval, OnTick: onTick}
}

// Start starts the timer. Starting a running timer restarts its countdown.
func (t *Timer) Start() {
	t.running = true
	t.elapsed = 0
}

// Stop stops the timer. Stopping a stopped timer is a no-op.
func (t *Timer) Stop() {
	t.running = false
	t.elapsed = 0
}

// Running reports whether the timer is counting down.
func (t *Timer) Running() bool {
	return t.running
}

// SetInterval changes the interval. A running timer keeps its elapsed time
// and fires as soon as the elapsed time reaches the new interval.
func (t *Timer) SetInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.Interval = d
}

// Remaining returns the time left before the next tick, or zero when stopped.
func (t *Timer) Remaining() time.Duration {
	if !t.running || t.elapsed >= t.Interval {
		return 0
	}
	return t.Interval - t.elapsed
}

// Update advances the timer by dt seconds, firing OnTick at most once.
func (t *Timer) Update(dt float32) {
	if !t.running {
		return
	}
	t.elapsed += secondsToDuration(float64(dt))
	if t.elapsed < t.Interval {
		return
	}
	t.elapsed = 0
	if t.OnTick != nil {
		t.OnTick()
	}
}

// secondsToDuration converts fractional seconds to a Duration.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
