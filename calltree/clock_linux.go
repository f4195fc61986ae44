//go:build linux

package calltree

import (
	"time"

	"golang.org/x/sys/unix"
)

func cpuClock(epoch time.Time) func() uint64 {
	return processCPUClock(epoch, func(ts *unix.Timespec) error {
		return unix.ClockGettime(unix.CLOCK_PROCESS_CPUTIME_ID, ts)
	})
}

// processCPUClock probes read once. If the process CPU clock is unavailable
// the monotonic clock is used for every reading instead. A read that fails
// later repeats the last good reading so both ends of an interval always
// come from the same clock.
func processCPUClock(epoch time.Time, read func(*unix.Timespec) error) func() uint64 {
	var ts unix.Timespec
	if err := read(&ts); err != nil {
		return monotonicNanos(epoch)
	}

	last := uint64(ts.Nano())
	return func() uint64 {
		var ts unix.Timespec
		if err := read(&ts); err == nil {
			last = uint64(ts.Nano())
		}
		return last
	}
}
