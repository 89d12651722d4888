// internal/clock/clock.go
package clock

import "time"

// Clock reports milliseconds since boot.
// The counter is monotonic and free-running: it is never reset
// for the lifetime of the process.
type Clock interface {
	NowMs() uint64
}

// Boot is the production clock, anchored at process start.
// time.Since uses the runtime's monotonic reading, so wall-clock
// adjustments do not move it.
type Boot struct {
	start time.Time
}

func NewBoot() *Boot {
	return &Boot{start: time.Now()}
}

func (b *Boot) NowMs() uint64 {
	return uint64(time.Since(b.start) / time.Millisecond)
}

// Manual is a hand-driven clock for tests.
type Manual struct {
	ms uint64
}

func NewManual(startMs uint64) *Manual {
	return &Manual{ms: startMs}
}

func (m *Manual) NowMs() uint64 { return m.ms }

// Advance moves the clock forward by d milliseconds.
func (m *Manual) Advance(d uint64) { m.ms += d }

// Set jumps the clock to an absolute millisecond value.
func (m *Manual) Set(ms uint64) { m.ms = ms }
