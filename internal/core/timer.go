package core

import "time"

// FixedStep paces a loop at a steady rate without blocking. Headless render
// loops use it to decide when a frame is due.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given rate.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the configured interval.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the loop should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Until returns how long to wait before the next tick is due.
func (f *FixedStep) Until() time.Duration {
	if f.last.IsZero() || f.accumulator >= f.step {
		return 0
	}
	wait := f.step - f.accumulator - f.now().Sub(f.last)
	if wait < 0 {
		return 0
	}
	return wait
}
