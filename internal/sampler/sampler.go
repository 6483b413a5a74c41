package sampler

import (
	"errors"
	"fmt"
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
	"github.com/rileyhilliard/hibou/internal/delta"
	"github.com/rileyhilliard/hibou/internal/logger"
)

// ErrNotRunning is returned by Tick outside StateRunning.
var ErrNotRunning = errors.New("sampler is not running")

// Options configures a Sampler.
type Options struct {
	// Filesystems lists mount paths whose usage is reported each tick.
	Filesystems []string

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Sampler owns the previous snapshot and turns each new one into a Frame.
// It is not safe for concurrent use; callers serialize Tick.
type Sampler struct {
	reader  counters.Reader
	opts    Options
	log     logger.Logger
	latency *LatencyStats

	state State
	cores int
	seq   uint64
	prev  *Snapshot
}

// New creates a sampler in StateInit.
func New(reader counters.Reader, opts Options, log logger.Logger) *Sampler {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		reader:  reader,
		opts:    opts,
		log:     log,
		latency: NewLatencyStats(),
		state:   StateInit,
	}
}

// State returns the current lifecycle phase.
func (s *Sampler) State() State {
	return s.state
}

// CoreCount returns the number of cores fixed at Init.
func (s *Sampler) CoreCount() int {
	return s.cores
}

// Latency returns the per-tick sampling duration statistics.
func (s *Sampler) Latency() *LatencyStats {
	return s.latency
}

// Init reads the core count and takes the CPU and network baselines that
// serve as "previous" for the first Tick. The core count and the stat source
// are required; a network failure only degrades the first frame.
func (s *Sampler) Init() error {
	if s.state != StateInit {
		return fmt.Errorf("init called in state %s", s.state)
	}

	cores, err := s.reader.CoreCount()
	if err != nil {
		return fmt.Errorf("reading core count: %w", err)
	}
	if cores <= 0 {
		return fmt.Errorf("reading core count: %w: %d cores", counters.ErrParse, cores)
	}
	s.cores = cores

	now := s.opts.Clock()
	set := counters.NewCPUSet(cores)
	if _, err := s.reader.CPU(set); err != nil {
		return fmt.Errorf("reading baseline CPU counters: %w", err)
	}
	if !set.Complete() {
		s.log.Warn("baseline CPU sample has %d of %d cores", set.Valid(), cores)
	}

	traffic, err := s.reader.Network()
	if err != nil {
		s.log.Warn("baseline network sample failed: %v", err)
	}

	s.prev = &Snapshot{
		Taken:   now,
		CPU:     Reading[*counters.CPUSet]{Value: set},
		Carried: make([]bool, cores),
		Network: Reading[counters.Traffic]{Value: traffic, Err: err},
	}
	s.state = StateRunning
	s.log.Debug("sampler running with %d cores", cores)
	return nil
}

// Tick takes a new snapshot, computes a Frame against the previous one and
// rotates. Read failures degrade the Frame; the only error is ErrNotRunning.
func (s *Sampler) Tick() (Frame, error) {
	if s.state != StateRunning {
		return Frame{}, ErrNotRunning
	}

	start := s.opts.Clock()
	curr := s.take(start)
	frame := s.compute(s.prev, curr)
	s.prev = curr
	s.latency.Record(s.opts.Clock().Sub(start))

	return frame, nil
}

// Stop moves the sampler to StateTerminating and drops its snapshot.
func (s *Sampler) Stop() {
	if s.state == StateTerminating {
		return
	}
	s.state = StateTerminating
	s.prev = nil
	s.log.Debug("sampler stopped after %d ticks; latency %s", s.seq, s.latency.Summary())
}

// take builds a complete snapshot. All reads for one tick land in the same
// snapshot; nothing is shared with the previous one except carried values.
func (s *Sampler) take(now time.Time) *Snapshot {
	snap := &Snapshot{
		Taken:   now,
		Carried: make([]bool, s.cores),
	}

	set := counters.NewCPUSet(s.cores)
	_, err := s.reader.CPU(set)
	if !set.Complete() {
		for i := range snap.Carried {
			_, ok := set.Get(i)
			snap.Carried[i] = !ok
		}
		filled := set.FillFrom(s.prev.CPU.Value)
		s.log.Debug("CPU sample incomplete (%d of %d cores), carried %d from previous", set.Valid()-filled, s.cores, filled)
	}
	snap.CPU = Reading[*counters.CPUSet]{Value: set, Err: err}

	traffic, err := s.reader.Network()
	snap.Network = Reading[counters.Traffic]{Value: traffic, Err: err}

	mem, err := s.reader.Memory()
	snap.Memory = Reading[counters.Extent]{Value: mem, Err: err}

	snap.Filesystems = make([]FilesystemReading, len(s.opts.Filesystems))
	for i, path := range s.opts.Filesystems {
		ext, err := s.reader.Filesystem(path)
		snap.Filesystems[i] = FilesystemReading{
			Path:    path,
			Reading: Reading[counters.Extent]{Value: ext, Err: err},
		}
	}

	return snap
}

// compute runs the delta engine over a snapshot pair.
func (s *Sampler) compute(prev, curr *Snapshot) Frame {
	s.seq++
	frame := Frame{
		Seq:     s.seq,
		Taken:   curr.Taken,
		Elapsed: curr.Taken.Sub(prev.Taken),
		Cores:   make([]CoreUsage, s.cores),
	}

	for i := 0; i < s.cores; i++ {
		pct, err := delta.CoreUsagePercent(prev.CPU.Value, curr.CPU.Value, i)
		if err != nil {
			s.log.Error("core %d: %v", i, err)
		}
		frame.Cores[i] = CoreUsage{ID: i, Percent: pct, Stale: curr.Carried[i]}
	}

	frame.Memory = extentUsage("memory", curr.Memory)

	frame.Filesystems = make([]ExtentUsage, len(curr.Filesystems))
	for i, fs := range curr.Filesystems {
		frame.Filesystems[i] = extentUsage(fs.Path, fs.Reading)
	}

	frame.Network = s.throughput(prev.Network, curr.Network, frame.Elapsed)

	return frame
}

func (s *Sampler) throughput(prev, curr Reading[counters.Traffic], elapsed time.Duration) Throughput {
	if !curr.OK() {
		return Throughput{InMbps: delta.Unknown, OutMbps: delta.Unknown, Err: curr.Err}
	}
	if !prev.OK() {
		return Throughput{InMbps: delta.Unknown, OutMbps: delta.Unknown, Err: prev.Err}
	}

	in, out := delta.ThroughputDelta(prev.Value, curr.Value)
	reset := delta.Regressed(prev.Value, curr.Value)
	if reset {
		s.log.Debug("network counters went backwards (%+v -> %+v); clamped to zero", prev.Value, curr.Value)
	}

	return Throughput{
		InBytes:  in,
		OutBytes: out,
		InMbps:   delta.MegabitsPerSecond(in, elapsed),
		OutMbps:  delta.MegabitsPerSecond(out, elapsed),
		Reset:    reset,
	}
}

// extentUsage converts a reading into renderer values. A degraded reading
// keeps its size when one was read but never reports a usage figure.
func extentUsage(label string, r Reading[counters.Extent]) ExtentUsage {
	usage := ExtentUsage{
		Label:      label,
		Percent:    delta.Unknown,
		TotalBytes: r.Value.TotalBytes(),
		Err:        r.Err,
	}
	if r.OK() {
		usage.Percent = delta.ExtentUsagePercent(r.Value)
	}
	return usage
}
