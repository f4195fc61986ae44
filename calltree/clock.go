package calltree

import "time"

// Clock supplies the two readings every node timer records: a monotonic
// wall-clock reading and a CPU-cost counter. Readings are only ever
// subtracted from each other, so the epoch of either is arbitrary.
type Clock interface {
	Wall() time.Duration
	// Cycles is the CPU-cost counter. Its unit depends on the clock; see
	// SystemClock.
	Cycles() uint64
}

type systemClock struct {
	epoch time.Time
	cpu   func() uint64
}

// SystemClock returns the default clock. Wall readings come from the
// monotonic clock.
//
// Cycle readings are not hardware cycles. On Linux they are the CPU time
// consumed by the process in nanoseconds, so the report's Cycles column is
// CPU nanoseconds. Where no process CPU clock is available they are
// monotonic nanoseconds, the same as wall time. The source is chosen once
// here and never changes for the life of the clock.
func SystemClock() Clock {
	epoch := time.Now()
	return systemClock{
		epoch: epoch,
		cpu:   cpuClock(epoch),
	}
}

func (c systemClock) Wall() time.Duration {
	return time.Since(c.epoch)
}

func (c systemClock) Cycles() uint64 {
	return c.cpu()
}

func monotonicNanos(epoch time.Time) func() uint64 {
	return func() uint64 {
		return uint64(time.Since(epoch))
	}
}
