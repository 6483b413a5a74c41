package sampler

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds in microseconds: 1us to 10s, 3 significant figures.
const (
	latencyMin     = 1
	latencyMax     = 10_000_000
	latencySigFigs = 3
)

// LatencyStats records how long each tick spent reading sources.
type LatencyStats struct {
	hist *hdrhistogram.Histogram
}

// LatencySummary is a point-in-time digest of LatencyStats.
type LatencySummary struct {
	Count int64
	P50   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// NewLatencyStats creates an empty recorder.
func NewLatencyStats() *LatencyStats {
	return &LatencyStats{
		hist: hdrhistogram.New(latencyMin, latencyMax, latencySigFigs),
	}
}

// Record adds one tick duration. Values outside the histogram range are
// clamped to it.
func (l *LatencyStats) Record(d time.Duration) {
	us := d.Microseconds()
	if us < latencyMin {
		us = latencyMin
	}
	if us > latencyMax {
		us = latencyMax
	}
	_ = l.hist.RecordValue(us)
}

// Summary returns the current percentiles.
func (l *LatencyStats) Summary() LatencySummary {
	return LatencySummary{
		Count: l.hist.TotalCount(),
		P50:   time.Duration(l.hist.ValueAtQuantile(50)) * time.Microsecond,
		P99:   time.Duration(l.hist.ValueAtQuantile(99)) * time.Microsecond,
		Max:   time.Duration(l.hist.Max()) * time.Microsecond,
	}
}

// String formats the summary for logs and the dashboard footer.
func (s LatencySummary) String() string {
	if s.Count == 0 {
		return "no samples"
	}
	return fmt.Sprintf("n=%d p50=%s p99=%s max=%s", s.Count, s.P50, s.P99, s.Max)
}
