package engine

import (
	"sync"
	"time"
)

// Clock supplies wall time for frame-rate measurement
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now with its monotonic component
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a controllable Clock for tests
type ManualClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fpsMeter counts presented frames over one-second windows
type fpsMeter struct {
	clock       Clock
	windowStart time.Time
	frames      int
	rate        float64
}

func newFPSMeter(clock Clock) fpsMeter {
	return fpsMeter{clock: clock, windowStart: clock.Now()}
}

// mark records one frame and closes the window once a second has elapsed
func (m *fpsMeter) mark() {
	m.frames++
	now := m.clock.Now()
	elapsed := now.Sub(m.windowStart)
	if elapsed >= time.Second {
		m.rate = float64(m.frames) / elapsed.Seconds()
		m.frames = 0
		m.windowStart = now
	}
}

func (m *fpsMeter) reset() {
	m.frames = 0
	m.rate = 0
	m.windowStart = m.clock.Now()
}
