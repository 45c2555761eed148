package runtime

import "sync/atomic"

// Clock is a monotonic logical counter for evolution ticks.
//
// Every Evolve call stamps one tick, so two runs of the same schedule
// produce identical tick sequences; wall time never enters the ordering.
//
// Clock is safe for concurrent use, though the runtime's single-threaded
// contract means only one goroutine normally calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock returns a clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt returns a clock starting at a specific tick, for resuming a
// run from a prior report.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next tick and advances the clock. Each call returns a
// unique, increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the clock position without advancing it.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
