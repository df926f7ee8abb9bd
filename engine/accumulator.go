package engine

import "time"

// Accumulator converts elapsed frame time into whole fixed ticks
//
// Time not consumed by a whole tick carries into the next frame, so the
// tick count over any run equals floor(total/tick) with no drift. A single
// frame contributes at most maxFrame, which bounds catch-up after a stall.
type Accumulator struct {
	tick     time.Duration
	maxFrame time.Duration

	last time.Time
	acc  time.Duration
}

// NewAccumulator creates an accumulator; maxFrame 0 disables the per-frame cap
func NewAccumulator(tick, maxFrame time.Duration) *Accumulator {
	return &Accumulator{tick: tick, maxFrame: maxFrame}
}

// Reset restarts measurement at now and drops any carried time
func (a *Accumulator) Reset(now time.Time) {
	a.last = now
	a.acc = 0
}

// Advance returns the ticks owed between the previous call and now
func (a *Accumulator) Advance(now time.Time) int {
	elapsed := now.Sub(a.last)
	a.last = now

	if elapsed < 0 {
		elapsed = 0
	}
	if a.maxFrame > 0 && elapsed > a.maxFrame {
		elapsed = a.maxFrame
	}
	a.acc += elapsed

	if a.tick <= 0 {
		return 0
	}
	n := a.acc / a.tick
	a.acc -= n * a.tick
	return int(n)
}

// Tick returns the fixed tick duration
func (a *Accumulator) Tick() time.Duration {
	return a.tick
}

// Remainder is the carried time not yet consumed by a tick
func (a *Accumulator) Remainder() time.Duration {
	return a.acc
}

// Alpha is the carried fraction of a tick, in [0,1)
func (a *Accumulator) Alpha() float64 {
	if a.tick <= 0 {
		return 0
	}
	return float64(a.acc) / float64(a.tick)
}
