package runtime

import "sync/atomic"

// Clock is a monotonic logical clock for step ordering.
//
// Every loop iteration is stamped with a strictly increasing seq from this
// clock. Wall-clock timestamps are never used for ordering: the seq is what
// makes a recorded run trace replayable and comparable.
//
// Thread-safe via atomic operations, although the sequential loop only ever
// calls Next from one goroutine.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a specific sequence number.
// Used when replaying a recorded run from its last known position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
