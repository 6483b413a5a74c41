package sampler

import (
	"errors"
	"time"

	"github.com/rileyhilliard/hibou/internal/counters"
)

// fakeReader replays scripted counter values. Each call to CPU or Network
// consumes the next entry; the last entry repeats once the script runs out.
type fakeReader struct {
	cores    int
	coresErr error

	cpu    []map[int]counters.CPUCounters
	cpuErr error
	cpuN   int

	net    []counters.Traffic
	netErr error
	netN   int

	mem    counters.Extent
	memErr error

	fs    map[string]counters.Extent
	fsErr error
}

func (f *fakeReader) CoreCount() (int, error) {
	return f.cores, f.coresErr
}

func (f *fakeReader) CPU(set *counters.CPUSet) (counters.ParseStats, error) {
	if f.cpuErr != nil {
		return counters.ParseStats{}, f.cpuErr
	}
	var stats counters.ParseStats
	if len(f.cpu) == 0 {
		return stats, nil
	}
	idx := f.cpuN
	if idx >= len(f.cpu) {
		idx = len(f.cpu) - 1
	}
	f.cpuN++
	for i, c := range f.cpu[idx] {
		if err := set.Set(i, c); err != nil {
			stats.Skipped++
			continue
		}
		stats.Parsed++
	}
	return stats, nil
}

func (f *fakeReader) Memory() (counters.Extent, error) {
	return f.mem, f.memErr
}

func (f *fakeReader) Filesystem(path string) (counters.Extent, error) {
	if f.fsErr != nil {
		return counters.Extent{}, f.fsErr
	}
	ext, ok := f.fs[path]
	if !ok {
		return counters.Extent{}, counters.ErrSourceUnavailable
	}
	return ext, nil
}

func (f *fakeReader) Network() (counters.Traffic, error) {
	if f.netErr != nil {
		return counters.Traffic{}, f.netErr
	}
	if len(f.net) == 0 {
		return counters.Traffic{}, nil
	}
	idx := f.netN
	if idx >= len(f.net) {
		idx = len(f.net) - 1
	}
	f.netN++
	return f.net[idx], nil
}

// stepClock advances by step on every call.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// recordingRenderer keeps every frame it is given.
type recordingRenderer struct {
	frames   []Frame
	err      error
	onRender func(Frame)
}

func (r *recordingRenderer) Render(f Frame) error {
	r.frames = append(r.frames, f)
	if r.onRender != nil {
		r.onRender(f)
	}
	return r.err
}

// scriptedPoller returns keys in order, then reports no key.
type scriptedPoller struct {
	keys  []byte
	errs  []error
	calls int
}

func (p *scriptedPoller) Poll(time.Duration) (byte, bool, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return 0, false, p.errs[i]
	}
	if i < len(p.keys) && p.keys[i] != 0 {
		return p.keys[i], true, nil
	}
	return 0, false, nil
}

var errBoom = errors.New("boom")
