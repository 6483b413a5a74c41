package sampler

import (
	"time"

	"github.com/rileyhilliard/hibou/internal/delta"
)

// CoreUsage is the utilization of one core over the last tick.
type CoreUsage struct {
	ID      int
	Percent float64 // NaN when unknown
	Stale   bool    // counters were carried over from an earlier tick
}

// Known reports whether Percent holds a value.
func (c CoreUsage) Known() bool {
	return !delta.IsUnknown(c.Percent)
}

// ExtentUsage is the usage of a capacity resource at the current tick.
type ExtentUsage struct {
	Label      string
	Percent    float64 // NaN when unknown
	TotalBytes uint64  // 0 when unknown
	Err        error
}

// Known reports whether Percent holds a value.
func (e ExtentUsage) Known() bool {
	return !delta.IsUnknown(e.Percent)
}

// Throughput is network traffic over the last tick.
type Throughput struct {
	InBytes  uint64
	OutBytes uint64
	InMbps   float64 // NaN when unknown
	OutMbps  float64 // NaN when unknown
	Reset    bool    // a counter went backwards and was clamped
	Err      error
}

// Known reports whether the rates hold values.
func (t Throughput) Known() bool {
	return !delta.IsUnknown(t.InMbps) && !delta.IsUnknown(t.OutMbps)
}

// Frame is the record handed to a renderer once per tick. Every value in it
// is already computed; renderers only format.
type Frame struct {
	Seq         uint64
	Taken       time.Time
	Elapsed     time.Duration
	Cores       []CoreUsage
	Memory      ExtentUsage
	Filesystems []ExtentUsage
	Network     Throughput
}
