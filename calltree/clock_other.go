//go:build !linux

package calltree

import "time"

// No portable process CPU clock here, fall back to monotonic nanoseconds.
func cpuClock(epoch time.Time) func() uint64 {
	return monotonicNanos(epoch)
}
