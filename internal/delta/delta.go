// Package delta derives utilization and throughput from pairs of counter
// readings. Every function is pure; a result that cannot be computed is
// reported as Unknown (NaN) rather than as a number that looks healthy.
package delta

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
)

// ErrInvalidCore is returned for a negative or out-of-range core index.
var ErrInvalidCore = errors.New("invalid core index")

// Unknown is the sentinel for a value that has no defined result.
var Unknown = math.NaN()

// IsUnknown reports whether v is the Unknown sentinel.
func IsUnknown(v float64) bool {
	return math.IsNaN(v)
}

// CPUUsagePercent returns the share of non-idle ticks between two readings
// of the same core. It is Unknown when no ticks elapsed (including the
// first tick, where prev == curr) or when the counters went backwards.
func CPUUsagePercent(prev, curr counters.CPUCounters) float64 {
	totalPrev, totalCurr := prev.Total(), curr.Total()
	if totalCurr <= totalPrev {
		return Unknown
	}
	totalDelta := totalCurr - totalPrev

	var idleDelta uint64
	if curr.Idle > prev.Idle {
		idleDelta = curr.Idle - prev.Idle
	}
	if idleDelta > totalDelta {
		idleDelta = totalDelta
	}

	return 100 * float64(totalDelta-idleDelta) / float64(totalDelta)
}

// CoreUsagePercent applies CPUUsagePercent to one core of two CPU sets.
// A slot without data in either set yields Unknown.
func CoreUsagePercent(prev, curr *counters.CPUSet, core int) (float64, error) {
	if core < 0 || core >= curr.Len() || core >= prev.Len() {
		return Unknown, fmt.Errorf("%w: %d", ErrInvalidCore, core)
	}

	p, ok := prev.Get(core)
	if !ok {
		return Unknown, nil
	}
	c, ok := curr.Get(core)
	if !ok {
		return Unknown, nil
	}
	return CPUUsagePercent(p, c), nil
}

// ExtentUsagePercent returns 100 × (1 − free/total). A zero total means the
// resource was unreadable and yields Unknown.
func ExtentUsagePercent(e counters.Extent) float64 {
	if e.Total == 0 {
		return Unknown
	}
	free := e.Free
	if free > e.Total {
		free = e.Total
	}
	return 100 * (1 - float64(free)/float64(e.Total))
}

// ThroughputDelta returns bytes received and sent between two readings.
// A counter that went backwards (interface reset) contributes zero.
func ThroughputDelta(prev, curr counters.Traffic) (in, out uint64) {
	return clampedSub(curr.RxBytes, prev.RxBytes), clampedSub(curr.TxBytes, prev.TxBytes)
}

// Regressed reports whether either traffic counter went backwards.
func Regressed(prev, curr counters.Traffic) bool {
	return curr.RxBytes < prev.RxBytes || curr.TxBytes < prev.TxBytes
}

// BitsPerSecond converts bytes transferred over elapsed into a bit rate.
func BitsPerSecond(bytes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return Unknown
	}
	return float64(bytes) * 8 / elapsed.Seconds()
}

// MegabitsPerSecond is BitsPerSecond in binary megabits (2^20 bits).
func MegabitsPerSecond(bytes uint64, elapsed time.Duration) float64 {
	return BitsPerSecond(bytes, elapsed) / (1024 * 1024)
}

func clampedSub(curr, prev uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}
