// Package waitertest provides a manual clock for tests that exercise waits.
package waitertest

import (
	"sync"
	"time"
)

// FakeClock jumps forward instantly whenever a timer is requested and keeps
// track of every requested tick.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Time
	ticks []time.Duration
}

// NewFakeClock returns a FakeClock set to start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// After advances the clock by d and returns an already fired channel.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
	c.ticks = append(c.ticks, d)

	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// Ticks returns a copy of the requested tick durations.
func (c *FakeClock) Ticks() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.ticks...)
}

// Elapsed is the total time the clock was advanced by.
func (c *FakeClock) Elapsed() time.Duration {
	var total time.Duration
	for _, t := range c.Ticks() {
		total += t
	}
	return total
}
